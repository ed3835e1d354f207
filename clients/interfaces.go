package clients

import (
	"context"
	"errors"

	"deploybot/models"
)

// ErrMalformedResponse means an upstream API answered with a body that could
// not be decoded as JSON. Callers must never assume upstream bodies are well-formed.
var ErrMalformedResponse = errors.New("malformed upstream response")

// DeploymentResult represents the API-level outcome of one deployment trigger.
// A transport or decode failure is returned as an error instead.
type DeploymentResult struct {
	OK           bool
	URL          string
	ErrorMessage string
}

// AuthResult represents the API-level outcome of an authentication call
type AuthResult struct {
	OK           bool
	AccessToken  string
	ErrorMessage string
}

// UpdateConfigResult represents the API-level outcome of a configuration update
type UpdateConfigResult struct {
	OK           bool
	ErrorMessage string
}

// TelegramClient defines the interface for sending text to a Telegram chat
type TelegramClient interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// VercelClient defines the interface for triggering deployments
type VercelClient interface {
	CreateDeployment(ctx context.Context) (*DeploymentResult, error)
}

// PlatformClient defines the interface for the production platform API
// (authentication and configuration updates)
type PlatformClient interface {
	Authenticate(ctx context.Context) (*AuthResult, error)
	UpdateConfig(ctx context.Context, accessToken, url string, config models.ConfigValue) (*UpdateConfigResult, error)
}
