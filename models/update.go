package models

// TelegramUpdate represents the webhook payload delivered by the Telegram Bot API
type TelegramUpdate struct {
	Message struct {
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		Text      string `json:"text"`
		MessageID int64  `json:"message_id"`
	} `json:"message"`
}

// InboundMessage is the flattened, validated form of one webhook delivery
type InboundMessage struct {
	ChatID    int64
	Text      string
	MessageID int64
}

// Inbound flattens the raw update into an InboundMessage
func (u TelegramUpdate) Inbound() InboundMessage {
	return InboundMessage{
		ChatID:    u.Message.Chat.ID,
		Text:      u.Message.Text,
		MessageID: u.Message.MessageID,
	}
}

// IsValid reports whether all required fields of the delivery are present.
// Telegram never assigns chat or message ID zero, and commands are text-only.
func (m InboundMessage) IsValid() bool {
	return m.ChatID != 0 && m.Text != "" && m.MessageID != 0
}
