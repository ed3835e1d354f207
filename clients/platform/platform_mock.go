package platform

import (
	"context"

	"github.com/stretchr/testify/mock"

	"deploybot/clients"
	"deploybot/models"
)

// MockPlatformClient is a mock implementation of the clients.PlatformClient interface
type MockPlatformClient struct {
	mock.Mock
}

func (m *MockPlatformClient) Authenticate(ctx context.Context) (*clients.AuthResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.AuthResult), args.Error(1)
}

func (m *MockPlatformClient) UpdateConfig(
	ctx context.Context,
	accessToken, url string,
	config models.ConfigValue,
) (*clients.UpdateConfigResult, error) {
	args := m.Called(ctx, accessToken, url, config)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.UpdateConfigResult), args.Error(1)
}
