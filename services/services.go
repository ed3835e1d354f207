package services

import (
	"context"

	"deploybot/core"
	"deploybot/models"
)

// NotifierService defines the interface for best-effort chat notification
// delivery. Send retries internally and never propagates delivery failures.
type NotifierService interface {
	Send(ctx context.Context, chatID int64, text string)
}

// DedupService defines the interface for replay protection on inbound messages
type DedupService interface {
	// CheckAndRecord returns true if the message ID was seen for the first
	// time and records it atomically with the check.
	CheckAndRecord(messageID int64) bool
}

// CommandsService defines the interface for parsing inbound message text
type CommandsService interface {
	Parse(text string) (models.Command, error)
}

// DeploymentsService defines the interface for orchestrating sequential deployments
type DeploymentsService interface {
	Run(ctx context.Context, chatID int64, count int) []models.DeploymentAttemptResult
}

// ConfigureService defines the interface for the authenticate-then-update
// configuration flow
type ConfigureService interface {
	Run(ctx context.Context, chatID int64, url string, config models.ConfigValue) error
}

// ParseError reports a recognized command with malformed arguments.
// UserMessage is the chat-facing explanation of what was wrong.
type ParseError struct {
	UserMessage string
}

func (e *ParseError) Error() string {
	return "parse failure: " + e.UserMessage
}

func (e *ParseError) Unwrap() error {
	return core.ErrParseFailure
}
