package notifier

import (
	"unicode/utf8"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"go.uber.org/zap"
)

// MaxMessageLength is the Telegram limit for a text message, in characters.
const MaxMessageLength = 4096

// Sender is the part of *gotgbot.Bot the notifier needs.
type Sender interface {
	SendMessage(chatId int64, text string, opts *gotgbot.SendMessageOpts) (*gotgbot.Message, error)
}

// Telegram delivers plain-text notifications to a single chat.
type Telegram struct {
	Sender Sender
	ChatID int64
	Logger *zap.Logger
}

func NewTelegram(sender Sender, chatID int64, logger *zap.Logger) *Telegram {
	return &Telegram{
		Sender: sender,
		ChatID: chatID,
		Logger: logger.Named("notifier"),
	}
}

// Notify sends text to the chat. Failures are logged and reported as false.
func (t *Telegram) Notify(text string) bool {
	text = truncate(text, MaxMessageLength)

	_, err := t.Sender.SendMessage(t.ChatID, text, &gotgbot.SendMessageOpts{
		LinkPreviewOptions: &gotgbot.LinkPreviewOptions{
			IsDisabled: true,
		},
	})
	if err != nil {
		t.Logger.Error("Failed to send message",
			zap.Int64("chat_id", t.ChatID),
			zap.Error(err))
		return false
	}

	t.Logger.Debug("Message sent",
		zap.Int64("chat_id", t.ChatID),
		zap.String("text", text))
	return true
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
