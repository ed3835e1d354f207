package vercel

import (
	"context"

	"github.com/stretchr/testify/mock"

	"deploybot/clients"
)

// MockVercelClient is a mock implementation of the clients.VercelClient interface
type MockVercelClient struct {
	mock.Mock
}

func (m *MockVercelClient) CreateDeployment(ctx context.Context) (*clients.DeploymentResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DeploymentResult), args.Error(1)
}
