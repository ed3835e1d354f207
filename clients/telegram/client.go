package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"deploybot/clients"
)

const defaultAPIBaseURL = "https://api.telegram.org"

// TelegramClient implements the clients.TelegramClient interface using the
// Telegram Bot API sendMessage method
type TelegramClient struct {
	httpClient *http.Client
	botToken   string
	baseURL    string
}

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// NewTelegramClient creates a new Telegram Bot API client
func NewTelegramClient(botToken string) clients.TelegramClient {
	return &TelegramClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		botToken:   botToken,
		baseURL:    defaultAPIBaseURL,
	}
}

// SendMessage delivers one text message to the given chat
func (c *TelegramClient) SendMessage(ctx context.Context, chatID int64, text string) error {
	reqBody := sendMessageRequest{
		ChatID: chatID,
		Text:   text,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.botToken)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sendMessage failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var sendResp sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&sendResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !sendResp.OK {
		return fmt.Errorf("sendMessage rejected by Telegram: %s", sendResp.Description)
	}

	return nil
}
