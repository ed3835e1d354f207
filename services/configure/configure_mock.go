package configure

import (
	"context"

	"github.com/stretchr/testify/mock"

	"deploybot/models"
)

// MockConfigureService is a mock implementation of the services.ConfigureService interface
type MockConfigureService struct {
	mock.Mock
}

func (m *MockConfigureService) Run(ctx context.Context, chatID int64, url string, config models.ConfigValue) error {
	args := m.Called(ctx, chatID, url, config)
	return args.Error(0)
}
