package middleware

import (
	"context"
	"crypto/md5"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"deploybot/services"
)

// ErrorAlertMiddleware recovers panics in the HTTP pipeline and alerts the
// operator through the bot's own chat, with a cooldown so a crash loop does
// not flood the conversation.
type ErrorAlertMiddleware struct {
	notifier      services.NotifierService
	alertChatID   int64
	environment   string
	alertedErrors map[string]time.Time // hash -> last alert time
	mutex         sync.Mutex
	alertCooldown time.Duration
}

func NewErrorAlertMiddleware(notifier services.NotifierService, alertChatID int64, environment string) *ErrorAlertMiddleware {
	return &ErrorAlertMiddleware{
		notifier:      notifier,
		alertChatID:   alertChatID,
		environment:   environment,
		alertedErrors: make(map[string]time.Time),
		alertCooldown: 10 * time.Minute,
	}
}

// HTTPMiddleware wraps HTTP handlers with panic recovery. A recovered panic
// answers 500 so the webhook caller always gets a final status.
func (m *ErrorAlertMiddleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				errorMsg := fmt.Sprintf("HTTP %s %s: PANIC - %v", r.Method, r.URL.Path, rec)
				log.Printf("❌ %s", errorMsg)
				m.alert(errorMsg)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// alert delivers one operator notification unless the same error alerted
// within the cooldown window
func (m *ErrorAlertMiddleware) alert(errorMsg string) {
	hash := fmt.Sprintf("%x", md5.Sum([]byte(errorMsg)))

	m.mutex.Lock()
	if lastAlert, exists := m.alertedErrors[hash]; exists && time.Since(lastAlert) < m.alertCooldown {
		m.mutex.Unlock()
		return
	}
	m.alertedErrors[hash] = time.Now()
	m.mutex.Unlock()

	text := fmt.Sprintf("🚨 deploybot error (%s)\n%s", m.environment, errorMsg)
	go m.notifier.Send(context.Background(), m.alertChatID, text)
}
