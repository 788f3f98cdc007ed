package notifier

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSender struct {
	chatID int64
	texts  []string
	opts   *gotgbot.SendMessageOpts
	err    error
}

func (f *fakeSender) SendMessage(chatId int64, text string, opts *gotgbot.SendMessageOpts) (*gotgbot.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.chatID = chatId
	f.texts = append(f.texts, text)
	f.opts = opts
	return &gotgbot.Message{MessageId: int64(len(f.texts)), Text: text}, nil
}

func TestNotify(t *testing.T) {
	sender := &fakeSender{}
	n := NewTelegram(sender, 42, zap.NewNop())

	ok := n.Notify("hello")

	assert.True(t, ok)
	assert.Equal(t, int64(42), sender.chatID)
	assert.Equal(t, []string{"hello"}, sender.texts)
	require.NotNil(t, sender.opts)
	assert.Empty(t, sender.opts.ParseMode)
	assert.True(t, sender.opts.LinkPreviewOptions.IsDisabled)
}

func TestNotifyFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sender := &fakeSender{err: errors.New("Bad Request: chat not found")}
	n := NewTelegram(sender, 42, zap.New(core))

	ok := n.Notify("hello")

	assert.False(t, ok)
	entries := logs.FilterMessage("Failed to send message").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
	assert.Equal(t, "notifier", entries[0].LoggerName)
}

func TestNotifyTruncatesLongMessages(t *testing.T) {
	sender := &fakeSender{}
	n := NewTelegram(sender, 1, zap.NewNop())

	n.Notify(strings.Repeat("ж", MaxMessageLength+10))

	require.Len(t, sender.texts, 1)
	assert.Equal(t, MaxMessageLength, utf8.RuneCountInString(sender.texts[0]))
	assert.True(t, strings.HasSuffix(sender.texts[0], "…"))
}
