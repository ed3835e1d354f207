package notifier

import (
	"context"
	"log"
	"time"

	"deploybot/clients"
	"deploybot/utils"
)

// NotifierService delivers chat notifications with bounded retry. Delivery
// failure is logged and swallowed: a lost notification must never change the
// outcome of the command that produced it.
type NotifierService struct {
	telegramClient clients.TelegramClient
	maxAttempts    int
	sleep          func(time.Duration)
}

// NewNotifierService creates a notifier that tries each delivery up to
// maxAttempts times
func NewNotifierService(telegramClient clients.TelegramClient, maxAttempts int) *NotifierService {
	utils.AssertInvariant(maxAttempts > 0, "maxAttempts must be positive")

	return &NotifierService{
		telegramClient: telegramClient,
		maxAttempts:    maxAttempts,
		sleep:          time.Sleep,
	}
}

// Send delivers one message to the chat, retrying with a linear backoff of
// attempt * 2 seconds between attempts
func (s *NotifierService) Send(ctx context.Context, chatID int64, text string) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		err := s.telegramClient.SendMessage(ctx, chatID, text)
		if err == nil {
			log.Printf("✅ Message sent on attempt %d: %s", attempt, utils.TruncateForLog(text, 80))
			return
		}

		log.Printf("❌ Failed to send message on attempt %d: %v", attempt, err)

		if attempt == s.maxAttempts {
			log.Printf("❌ Max retries reached, giving up on message to chat %d", chatID)
			return
		}

		delay := time.Duration(attempt*2) * time.Second
		log.Printf("📋 Retrying in %s...", delay)
		s.sleep(delay)
	}
}
