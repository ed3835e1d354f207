package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"deploybot/models"
	"deploybot/services/commands"
	"deploybot/services/configure"
	"deploybot/services/dedup"
	"deploybot/services/deployments"
	"deploybot/services/notifier"
)

const allowedChatID = int64(1000)

type handlerFixture struct {
	handler         *TelegramWebhookHandler
	mockNotifier    *notifier.MockNotifierService
	mockDeployments *deployments.MockDeploymentsService
	mockConfigure   *configure.MockConfigureService
}

func newFixture() *handlerFixture {
	mockNotifier := &notifier.MockNotifierService{}
	mockDeployments := &deployments.MockDeploymentsService{}
	mockConfigure := &configure.MockConfigureService{}

	handler := NewTelegramWebhookHandler(
		allowedChatID,
		dedup.NewDedupService(1000),
		mockNotifier,
		commands.NewCommandsService(),
		mockDeployments,
		mockConfigure,
	)

	return &handlerFixture{
		handler:         handler,
		mockNotifier:    mockNotifier,
		mockDeployments: mockDeployments,
		mockConfigure:   mockConfigure,
	}
}

func webhookBody(chatID int64, text string, messageID int64) string {
	return fmt.Sprintf(`{"message":{"chat":{"id":%d},"text":%q,"message_id":%d}}`, chatID, text, messageID)
}

func doRequest(f *handlerFixture, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/telegram/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.handler.HandleTelegramWebhook(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return decoded
}

func TestHandleTelegramWebhook_InvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "not json",
			body: "not json at all",
		},
		{
			name: "missing chat id",
			body: `{"message":{"chat":{},"text":"/deploy","message_id":1}}`,
		},
		{
			name: "missing text",
			body: `{"message":{"chat":{"id":1000},"message_id":1}}`,
		},
		{
			name: "missing message id",
			body: `{"message":{"chat":{"id":1000},"text":"/deploy"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			rec := doRequest(f, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "invalid Telegram message payload", decodeBody(t, rec)["error"])

			// No side effects for malformed payloads
			f.mockNotifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
			f.mockDeployments.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
			f.mockConfigure.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandleTelegramWebhook_DuplicateMessageIgnored(t *testing.T) {
	f := newFixture()

	f.mockNotifier.On("Send", mock.Anything, allowedChatID, mock.AnythingOfType("string")).Maybe()
	f.mockDeployments.On("Run", mock.Anything, allowedChatID, 1).
		Return([]models.DeploymentAttemptResult{{Index: 1, OK: true, URL: "app.vercel.app"}}).Once()

	first := doRequest(f, webhookBody(allowedChatID, "/deploy", 7))
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "command processed successfully", decodeBody(t, first)["status"])

	second := doRequest(f, webhookBody(allowedChatID, "/deploy", 7))
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "duplicate message ignored", decodeBody(t, second)["status"])

	// The replay must not trigger a second orchestration
	f.mockDeployments.AssertNumberOfCalls(t, "Run", 1)
}

func TestHandleTelegramWebhook_UnauthorizedChat(t *testing.T) {
	f := newFixture()

	otherChat := int64(9999)
	f.mockNotifier.On("Send", mock.Anything, otherChat, "This chat is not authorized to use this bot.").Once()

	rec := doRequest(f, webhookBody(otherChat, "/deploy", 8))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "unauthorized chat ID", decodeBody(t, rec)["error"])

	f.mockNotifier.AssertExpectations(t)
	f.mockDeployments.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
	f.mockConfigure.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleTelegramWebhook_DeployDefaultsToOne(t *testing.T) {
	f := newFixture()

	f.mockDeployments.On("Run", mock.Anything, allowedChatID, 1).
		Return([]models.DeploymentAttemptResult{{Index: 1, OK: true, URL: "app.vercel.app"}}).Once()

	rec := doRequest(f, webhookBody(allowedChatID, "/deploy", 9))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "command processed successfully", decodeBody(t, rec)["status"])
	f.mockDeployments.AssertExpectations(t)
}

func TestHandleTelegramWebhook_DeployWithCount(t *testing.T) {
	f := newFixture()

	f.mockDeployments.On("Run", mock.Anything, allowedChatID, 3).
		Return([]models.DeploymentAttemptResult{
			{Index: 1, OK: true},
			{Index: 2, OK: false, ErrorMessage: "boom"},
			{Index: 3, OK: true},
		}).Once()

	rec := doRequest(f, webhookBody(allowedChatID, "/deploy 3", 10))

	// Mixed attempt outcomes still answer 200; failures were reported via chat
	assert.Equal(t, http.StatusOK, rec.Code)
	f.mockDeployments.AssertExpectations(t)
}

func TestHandleTelegramWebhook_DeployInvalidCount(t *testing.T) {
	f := newFixture()

	f.mockNotifier.On("Send", mock.Anything, allowedChatID,
		"Please provide a valid number of deployments (e.g. /deploy 3).").Once()

	rec := doRequest(f, webhookBody(allowedChatID, "/deploy 0", 11))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid command arguments", decodeBody(t, rec)["error"])

	f.mockNotifier.AssertExpectations(t)
	f.mockDeployments.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleTelegramWebhook_ConfigureSuccess(t *testing.T) {
	f := newFixture()

	expectedConfig := models.JSONConfigValue(json.RawMessage(`{"a":1}`))
	f.mockConfigure.On("Run", mock.Anything, allowedChatID, "https://x.example", expectedConfig).
		Return(nil).Once()

	rec := doRequest(f, webhookBody(allowedChatID, `/configure https://x.example {"a":1}`, 12))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "command processed successfully", decodeBody(t, rec)["status"])
	f.mockConfigure.AssertExpectations(t)
}

func TestHandleTelegramWebhook_ConfigureFailure(t *testing.T) {
	f := newFixture()

	f.mockConfigure.On("Run", mock.Anything, allowedChatID, "https://x.example", models.StringConfigValue("v")).
		Return(fmt.Errorf("upstream failure: authentication failed")).Once()

	rec := doRequest(f, webhookBody(allowedChatID, "/configure https://x.example v", 13))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "configuration failed", body["error"])
	assert.Contains(t, body["details"], "authentication failed")
}

func TestHandleTelegramWebhook_ConfigureInvalidJSON(t *testing.T) {
	f := newFixture()

	f.mockNotifier.On("Send", mock.Anything, allowedChatID,
		"Invalid configuration format. Provide valid JSON.").Once()

	rec := doRequest(f, webhookBody(allowedChatID, `/configure https://x.example {"a":}`, 14))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.mockNotifier.AssertExpectations(t)
	f.mockConfigure.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleTelegramWebhook_UnsupportedCommand(t *testing.T) {
	f := newFixture()

	f.mockNotifier.On("Send", mock.Anything, allowedChatID,
		"Unsupported command. Available commands: /deploy, /configure").Once()

	rec := doRequest(f, webhookBody(allowedChatID, "/status", 15))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unsupported command", decodeBody(t, rec)["error"])
	f.mockNotifier.AssertExpectations(t)
}
