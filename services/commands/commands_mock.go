package commands

import (
	"github.com/stretchr/testify/mock"

	"deploybot/models"
)

// MockCommandsService is a mock implementation of the services.CommandsService interface
type MockCommandsService struct {
	mock.Mock
}

func (m *MockCommandsService) Parse(text string) (models.Command, error) {
	args := m.Called(text)
	return args.Get(0).(models.Command), args.Error(1)
}
