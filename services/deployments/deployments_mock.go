package deployments

import (
	"context"

	"github.com/stretchr/testify/mock"

	"deploybot/models"
)

// MockDeploymentsService is a mock implementation of the services.DeploymentsService interface
type MockDeploymentsService struct {
	mock.Mock
}

func (m *MockDeploymentsService) Run(ctx context.Context, chatID int64, count int) []models.DeploymentAttemptResult {
	args := m.Called(ctx, chatID, count)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.DeploymentAttemptResult)
}
