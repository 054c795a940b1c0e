// Package notify tells moderators about new stand submissions.
package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/findlocalfirewood/firewood-api/internal/config"
	"github.com/findlocalfirewood/firewood-api/internal/domain"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Telegram struct {
	bot    sender
	chatID int64
}

// New returns a Telegram notifier, or Nop when no bot token is configured.
func New(conf *config.TelegramConfig) (ModeratorNotifier, error) {
	if conf == nil || conf.Token == "" || conf.ModeratorChatID == 0 {
		zap.L().Info("telegram notifications disabled")
		return Nop{}, nil
	}

	bot, err := tgbotapi.NewBotAPI(conf.Token)
	if err != nil {
		return nil, fmt.Errorf("tgbotapi.NewBotAPI -> %w", err)
	}
	zap.L().Info("telegram notifier authorized", zap.String("bot", bot.Self.UserName))

	return &Telegram{bot: bot, chatID: conf.ModeratorChatID}, nil
}

type ModeratorNotifier interface {
	StandSubmitted(ctx context.Context, stand domain.Stand) error
}

func (t *Telegram) StandSubmitted(ctx context.Context, stand domain.Stand) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(t.chatID, submissionText(stand))
	msg.DisableWebPagePreview = true

	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("t.bot.Send -> %w", err)
	}

	return nil
}

func submissionText(stand domain.Stand) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New stand awaiting approval: %s\n", stand.Name)
	fmt.Fprintf(&b, "%s\n", stand.Address)

	var sold []string
	for _, t := range stand.WoodTypes() {
		sold = append(sold, string(t))
	}
	if len(sold) > 0 {
		fmt.Fprintf(&b, "Sells: %s\n", strings.Join(sold, ", "))
	}
	if stand.SubmitterEmail != "" {
		fmt.Fprintf(&b, "Contact: %s\n", stand.SubmitterEmail)
	}
	fmt.Fprintf(&b, "Approve with: firewood approve %s", stand.ID)

	return b.String()
}

type Nop struct{}

func (Nop) StandSubmitted(context.Context, domain.Stand) error { return nil }
