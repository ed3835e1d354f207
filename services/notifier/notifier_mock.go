package notifier

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockNotifierService is a mock implementation of the services.NotifierService interface
type MockNotifierService struct {
	mock.Mock
}

func (m *MockNotifierService) Send(ctx context.Context, chatID int64, text string) {
	m.Called(ctx, chatID, text)
}
