package notify

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findlocalfirewood/firewood-api/internal/config"
	"github.com/findlocalfirewood/firewood-api/internal/domain"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestTelegramStandSubmitted(t *testing.T) {
	bot := &fakeSender{}
	n := &Telegram{bot: bot, chatID: 42}
	stand := domain.Stand{
		ID:             uuid.MustParse("6f1c2f7e-0000-4000-8000-000000000001"),
		Name:           "Miller Farm",
		Address:        "1200 County Rd 5, Traverse City, MI",
		IsBundled:      true,
		SubmitterEmail: "miller@example.com",
	}

	require.NoError(t, n.StandSubmitted(context.Background(), stand))
	require.Len(t, bot.sent, 1)

	msg, ok := bot.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Contains(t, msg.Text, "Miller Farm")
	assert.Contains(t, msg.Text, "Sells: bundled")
	assert.Contains(t, msg.Text, "miller@example.com")
	assert.Contains(t, msg.Text, stand.ID.String())
}

func TestTelegramSendError(t *testing.T) {
	n := &Telegram{bot: &fakeSender{err: errors.New("boom")}, chatID: 1}
	assert.Error(t, n.StandSubmitted(context.Background(), domain.Stand{Name: "x"}))
}

func TestTelegramCanceledContext(t *testing.T) {
	bot := &fakeSender{}
	n := &Telegram{bot: bot, chatID: 1}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, n.StandSubmitted(ctx, domain.Stand{}), context.Canceled)
	assert.Empty(t, bot.sent)
}

func TestNewWithoutTokenIsNop(t *testing.T) {
	n, err := New(&config.TelegramConfig{})
	require.NoError(t, err)
	assert.IsType(t, Nop{}, n)
}
