package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
)

// DefaultSampleSize is the number of words picked for a chat when the
// caller doesn't specify a positive count.
const DefaultSampleSize = 5

// Store defines the data access interface for chats and their words.
// Methods accept a context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// EnsureChat idempotently registers a chat. Registering an already
	// known chat is a no-op, not an error.
	EnsureChat(ctx context.Context, chatID int64, title string) error

	// AddWords stores the given words for a chat and returns how many were
	// actually new. Words are trimmed; empty-after-trim entries are
	// discarded without counting, and duplicates of already stored words
	// are silently absorbed. The chat row is created if missing.
	AddWords(ctx context.Context, chatID int64, words []string) (int, error)

	// ListActiveChats returns the IDs of all chats holding at least one
	// word, in no particular order.
	ListActiveChats(ctx context.Context) ([]int64, error)

	// RandomWords returns up to count words drawn uniformly at random,
	// without replacement, from the chat's stored set. A chat with no
	// words (or an unknown chat) yields an empty slice, not an error.
	RandomWords(ctx context.Context, chatID int64, count int) ([]string, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// EnsureChat idempotently registers a chat.
func (s *sqlxStore) EnsureChat(ctx context.Context, chatID int64, title string) error {
	query := `INSERT INTO chats (chat_id, title) VALUES (:chat_id, :title) ON CONFLICT (chat_id) DO NOTHING`

	chat := Chat{ChatID: chatID, Title: title}
	if _, err := s.db.NamedExecContext(ctx, query, chat); err != nil {
		s.logger.ErrorContext(ctx, "Error registering chat", "chat_id", chatID, "error", err)
		return fmt.Errorf("failed to register chat %d: %w", chatID, err)
	}

	s.logger.DebugContext(ctx, "Chat registered", "chat_id", chatID, "title", title)
	return nil
}

// AddWords stores a batch of words for a chat inside a single transaction.
// A failure on one row is logged and must not lose the rest of the batch.
func (s *sqlxStore) AddWords(ctx context.Context, chatID int64, words []string) (int, error) {
	if len(words) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction for adding words",
			"chat_id", chatID, "error", err)
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				if !errors.Is(rollbackErr, sql.ErrTxDone) {
					s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
				}
			}
		}
	}()

	// Self-healing: the chat row may predate the words or be missing
	// entirely if the bot never saw the membership update.
	registerQuery := `INSERT INTO chats (chat_id) VALUES (?) ON CONFLICT (chat_id) DO NOTHING`
	if _, err := tx.ExecContext(ctx, registerQuery, chatID); err != nil {
		s.logger.ErrorContext(ctx, "Error ensuring chat before adding words",
			"chat_id", chatID, "error", err)
		return 0, fmt.Errorf("failed to ensure chat %d: %w", chatID, err)
	}

	insertQuery := `INSERT INTO words (chat_id, word) VALUES (?, ?) ON CONFLICT (chat_id, word) DO NOTHING`

	added := 0
	for _, word := range words {
		clean := strings.TrimSpace(word)
		if clean == "" {
			continue
		}

		result, err := tx.ExecContext(ctx, insertQuery, chatID, clean)
		if err != nil {
			// One bad row must not lose the rest of the batch.
			s.logger.ErrorContext(ctx, "Error inserting word",
				"chat_id", chatID, "word", clean, "error", err)
			continue
		}

		affected, err := result.RowsAffected()
		if err != nil {
			s.logger.WarnContext(ctx, "Could not get affected row count for word insert",
				"chat_id", chatID, "error", err)
			continue
		}
		if affected > 0 {
			added++
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit transaction for adding words",
			"chat_id", chatID, "error", err)
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil

	s.logger.DebugContext(ctx, "Words added",
		"chat_id", chatID, "received", len(words), "added", added)
	return added, nil
}

// ListActiveChats returns the IDs of all chats with at least one word.
// A registered chat that holds no words is not active.
func (s *sqlxStore) ListActiveChats(ctx context.Context) ([]int64, error) {
	var chatIDs []int64
	query := `SELECT DISTINCT chat_id FROM words`

	if err := s.db.SelectContext(ctx, &chatIDs, query); err != nil {
		s.logger.ErrorContext(ctx, "Error listing active chats", "error", err)
		return nil, fmt.Errorf("failed to list active chats: %w", err)
	}

	s.logger.DebugContext(ctx, "Listed active chats", "count", len(chatIDs))
	return chatIDs, nil
}

// RandomWords samples the chat's word set without replacement. When the
// whole set fits in the sample it is returned in storage order.
func (s *sqlxStore) RandomWords(ctx context.Context, chatID int64, count int) ([]string, error) {
	if count <= 0 {
		count = DefaultSampleSize
	}

	var total int
	if err := s.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM words WHERE chat_id = ?`, chatID); err != nil {
		s.logger.ErrorContext(ctx, "Error counting words", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to count words for chat %d: %w", chatID, err)
	}

	if total == 0 {
		return nil, nil
	}

	var rows []Word
	var err error
	if total <= count {
		err = s.db.SelectContext(ctx, &rows,
			`SELECT id, chat_id, word FROM words WHERE chat_id = ? ORDER BY id`, chatID)
	} else {
		err = s.db.SelectContext(ctx, &rows,
			`SELECT id, chat_id, word FROM words WHERE chat_id = ? ORDER BY RANDOM() LIMIT ?`,
			chatID, count)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Error sampling words", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to sample words for chat %d: %w", chatID, err)
	}

	words := make([]string, len(rows))
	for i, row := range rows {
		words[i] = row.Word
	}

	s.logger.DebugContext(ctx, "Sampled words", "chat_id", chatID, "count", len(words), "total", total)
	return words, nil
}

// RunSQLMaintenance executes a VACUUM command on the SQLite database.
// SQLite requires VACUUM to run outside a transaction.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	_, err := s.db.ExecContext(ctx, "VACUUM;")

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)

	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed")
	return nil
}
