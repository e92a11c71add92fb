package handlers

import (
	"log/slog"

	"wordsbot/internal/config"
	"wordsbot/internal/database"
	"wordsbot/internal/words"
)

// HandlerDeps provides dependencies for Telegram update handlers.
type HandlerDeps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Store     database.Store
	Extractor *words.Extractor
}
