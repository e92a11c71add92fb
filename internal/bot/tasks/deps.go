// Package tasks implements the scheduled tasks of the bot: the daily word
// broadcast and periodic SQL maintenance.
package tasks

import (
	"context"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"wordsbot/internal/config"
	"wordsbot/internal/database"
)

// MessageSender is the outbound messaging boundary used by tasks.
// *tgbot.Bot satisfies it; tests substitute a fake.
type MessageSender interface {
	SendMessage(ctx context.Context, params *tgbot.SendMessageParams) (*models.Message, error)
}

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  database.Store
	Sender MessageSender
	Config *config.Config
}
