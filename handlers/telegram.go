package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"deploybot/core"
	"deploybot/models"
	"deploybot/services"
	"deploybot/utils"
)

// TelegramWebhookHandler is the entry point for inbound Telegram webhook
// deliveries: it validates, deduplicates, authorizes, parses and routes each
// message, and only responds once the routed command has fully run.
type TelegramWebhookHandler struct {
	allowedChatID      int64
	dedupService       services.DedupService
	notifierService    services.NotifierService
	commandsService    services.CommandsService
	deploymentsService services.DeploymentsService
	configureService   services.ConfigureService
}

func NewTelegramWebhookHandler(
	allowedChatID int64,
	dedupService services.DedupService,
	notifierService services.NotifierService,
	commandsService services.CommandsService,
	deploymentsService services.DeploymentsService,
	configureService services.ConfigureService,
) *TelegramWebhookHandler {
	return &TelegramWebhookHandler{
		allowedChatID:      allowedChatID,
		dedupService:       dedupService,
		notifierService:    notifierService,
		commandsService:    commandsService,
		deploymentsService: deploymentsService,
		configureService:   configureService,
	}
}

func (h *TelegramWebhookHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering Telegram webhook endpoints")

	router.HandleFunc("/telegram/webhook", h.HandleTelegramWebhook).Methods("POST")
	log.Printf("✅ POST /telegram/webhook endpoint registered")
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (h *TelegramWebhookHandler) HandleTelegramWebhook(w http.ResponseWriter, r *http.Request) {
	reqID := core.NewID("req")
	log.Printf("📨 Telegram update received from %s (request: %s)", r.RemoteAddr, reqID)

	var update models.TelegramUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Printf("❌ Failed to parse webhook body: %v (request: %s)", err, reqID)
		respondError(w, http.StatusBadRequest, "invalid Telegram message payload", "")
		return
	}

	msg := update.Inbound()
	if !msg.IsValid() {
		log.Printf("❌ Invalid message payload: chat=%d message=%d (request: %s)", msg.ChatID, msg.MessageID, reqID)
		respondError(w, http.StatusBadRequest, "invalid Telegram message payload", "")
		return
	}

	log.Printf("📨 Processing message %d from chat %d: %s (request: %s)",
		msg.MessageID, msg.ChatID, utils.TruncateForLog(msg.Text, 80), reqID)

	// Record before acting so a concurrent replay of the same message ID
	// cannot trigger side effects twice
	if !h.dedupService.CheckAndRecord(msg.MessageID) {
		log.Printf("⏭️ Skipping duplicate message %d (request: %s)", msg.MessageID, reqID)
		respondStatus(w, "duplicate message ignored")
		return
	}

	if msg.ChatID != h.allowedChatID {
		log.Printf("❌ Unauthorized chat ID %d, ignoring the command (request: %s)", msg.ChatID, reqID)
		// Best-effort notice; the notifier logs and swallows delivery failures
		h.notifierService.Send(r.Context(), msg.ChatID, "This chat is not authorized to use this bot.")
		respondError(w, http.StatusForbidden, "unauthorized chat ID", "")
		return
	}

	command, err := h.commandsService.Parse(msg.Text)
	if err != nil {
		var parseErr *services.ParseError
		if errors.As(err, &parseErr) {
			log.Printf("❌ Command parse failure: %v (request: %s)", err, reqID)
			h.notifierService.Send(r.Context(), msg.ChatID, parseErr.UserMessage)
			respondError(w, http.StatusBadRequest, "invalid command arguments", parseErr.UserMessage)
			return
		}
		log.Printf("❌ Unexpected parser error: %v (request: %s)", err, reqID)
		respondError(w, http.StatusInternalServerError, "internal server error", "")
		return
	}

	switch command.Type {
	case models.CommandTypeDeploy:
		results := h.deploymentsService.Run(r.Context(), msg.ChatID, command.DeployCount)
		succeeded := 0
		for _, result := range results {
			if result.OK {
				succeeded++
			}
		}
		log.Printf("📋 Completed deploy command: %d/%d attempts succeeded (request: %s)",
			succeeded, len(results), reqID)
		respondStatus(w, "command processed successfully")

	case models.CommandTypeConfigure:
		if err := h.configureService.Run(r.Context(), msg.ChatID, command.ConfigureURL, command.Config); err != nil {
			log.Printf("❌ Configure command failed: %v (request: %s)", err, reqID)
			respondError(w, http.StatusInternalServerError, "configuration failed", err.Error())
			return
		}
		log.Printf("📋 Completed configure command for %s (request: %s)", command.ConfigureURL, reqID)
		respondStatus(w, "command processed successfully")

	default:
		log.Printf("❌ Unsupported command: %s (request: %s)", utils.TruncateForLog(msg.Text, 80), reqID)
		h.notifierService.Send(r.Context(), msg.ChatID, "Unsupported command. Available commands: /deploy, /configure")
		respondError(w, http.StatusBadRequest, "unsupported command", "")
	}
}

func respondStatus(w http.ResponseWriter, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(statusResponse{Status: status}); err != nil {
		log.Printf("❌ Failed to write response: %v", err)
	}
}

func respondError(w http.ResponseWriter, code int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: message, Details: details}); err != nil {
		log.Printf("❌ Failed to write response: %v", err)
	}
}
