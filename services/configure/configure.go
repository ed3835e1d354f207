package configure

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/samber/mo"

	"deploybot/clients"
	"deploybot/core"
	"deploybot/models"
	"deploybot/services"
)

// ConfigureService orchestrates the two-phase configuration flow:
// authenticate against the platform API, then forward the configuration
// payload. Phase 2 never starts unless phase 1 produced an access token, and
// neither phase is ever retried.
type ConfigureService struct {
	platformClient clients.PlatformClient
	notifier       services.NotifierService
}

func NewConfigureService(
	platformClient clients.PlatformClient,
	notifier services.NotifierService,
) *ConfigureService {
	return &ConfigureService{
		platformClient: platformClient,
		notifier:       notifier,
	}
}

// Run performs the configuration flow for one /configure command. Every
// non-success path is reported to the chat before the error is returned.
func (s *ConfigureService) Run(ctx context.Context, chatID int64, url string, config models.ConfigValue) error {
	log.Printf("📋 Starting to configure deployment %s for chat: %d", url, chatID)

	s.notifier.Send(ctx, chatID, "Configuring deployment links...")

	maybeSession := s.authenticate(ctx, chatID)
	if !maybeSession.IsPresent() {
		// The failure has already been reported to the chat
		return fmt.Errorf("%w: authentication failed", core.ErrUpstreamFailure)
	}
	session := maybeSession.MustGet()

	if err := s.updateConfig(ctx, chatID, session, url, config); err != nil {
		return err
	}

	s.notifier.Send(ctx, chatID, fmt.Sprintf("Configuration updated successfully.\nLink: %s/api/config", url))

	log.Printf("📋 Completed successfully - configured deployment %s", url)
	return nil
}

// authenticate runs phase 1. It returns None when authentication failed for
// any reason; the chat has already been notified by the time it returns.
func (s *ConfigureService) authenticate(ctx context.Context, chatID int64) mo.Option[models.AuthSession] {
	log.Printf("📋 Authenticating before configuring deployment...")

	result, err := s.platformClient.Authenticate(ctx)
	if err != nil {
		log.Printf("❌ Authentication call failed: %v", err)
		s.notifier.Send(ctx, chatID, "Authentication failed. Please try again later.")
		return mo.None[models.AuthSession]()
	}

	if !result.OK {
		errorMessage := result.ErrorMessage
		if errorMessage == "" {
			errorMessage = "Unknown error"
		}
		s.notifier.Send(ctx, chatID, fmt.Sprintf("Authentication failed: %s", errorMessage))
		return mo.None[models.AuthSession]()
	}

	// A success response without a token is still a failure
	if result.AccessToken == "" {
		log.Printf("❌ Authentication response carried no access token")
		s.notifier.Send(ctx, chatID, "Authentication failed: Unknown error")
		return mo.None[models.AuthSession]()
	}

	log.Printf("✅ Authenticated successfully")
	return mo.Some(models.AuthSession{AccessToken: result.AccessToken})
}

// updateConfig runs phase 2 against the configuration-update API
func (s *ConfigureService) updateConfig(
	ctx context.Context,
	chatID int64,
	session models.AuthSession,
	url string,
	config models.ConfigValue,
) error {
	log.Printf("📋 Sending configuration request for deployment: %s", url)

	result, err := s.platformClient.UpdateConfig(ctx, session.AccessToken, url, config)
	if err != nil {
		if errors.Is(err, clients.ErrMalformedResponse) {
			log.Printf("❌ Configuration API returned a non-JSON body: %v", err)
			s.notifier.Send(ctx, chatID, "Configuration update failed: unexpected response format.")
		} else {
			log.Printf("❌ Configuration update call failed: %v", err)
			s.notifier.Send(ctx, chatID, "An unexpected error occurred. Please try again later.")
		}
		return fmt.Errorf("%w: update config: %v", core.ErrUpstreamFailure, err)
	}

	if !result.OK {
		errorMessage := result.ErrorMessage
		if errorMessage == "" {
			errorMessage = "Unknown error"
		}
		s.notifier.Send(ctx, chatID, fmt.Sprintf("Configuration update failed: %s", errorMessage))
		return fmt.Errorf("%w: update config rejected: %s", core.ErrUpstreamFailure, errorMessage)
	}

	return nil
}
