package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"golang.org/x/time/rate"
)

// newDailyWordsTask creates the scheduled task that broadcasts a random
// word sample to every active group chat. A failure for one chat never
// aborts delivery to the rest; success means every active group chat was
// attempted.
func newDailyWordsTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "daily_words")

	return func(ctx context.Context) error {
		log.InfoContext(ctx, "Starting daily word broadcast...")
		startTime := time.Now()

		chatIDs, err := deps.Store.ListActiveChats(ctx)
		if err != nil {
			log.ErrorContext(ctx, "Failed to list active chats", "error", err)
			return fmt.Errorf("failed to list active chats: %w", err)
		}

		if len(chatIDs) == 0 {
			log.InfoContext(ctx, "No active group chats found")
			return nil
		}

		log.InfoContext(ctx, "Found active chats", "count", len(chatIDs))

		// Paces sends so a long chat list doesn't burst into Telegram's
		// rate limits. Wait is context-aware, so shutdown isn't delayed.
		limiter := newSendLimiter(deps.Config.Words.SendDelay)

		sent := 0
		for _, chatID := range chatIDs {
			if chatID >= 0 {
				log.InfoContext(ctx, "Skipping personal chat", "chat_id", chatID)
				continue
			}

			if err := limiter.Wait(ctx); err != nil {
				log.WarnContext(ctx, "Broadcast cancelled", "error", err, "sent", sent)
				return err
			}

			sample, err := deps.Store.RandomWords(ctx, chatID, deps.Config.Words.SampleSize)
			if err != nil {
				log.ErrorContext(ctx, "Failed to sample words", "chat_id", chatID, "error", err)
				continue
			}
			if len(sample) == 0 {
				log.InfoContext(ctx, "No words for chat", "chat_id", chatID)
				continue
			}

			text := formatWordsMessage(deps.Config.Words.Header, sample)
			if _, err := deps.Sender.SendMessage(ctx, &tgbot.SendMessageParams{
				ChatID: chatID,
				Text:   text,
			}); err != nil {
				log.ErrorContext(ctx, "Failed to send words", "chat_id", chatID, "error", err)
				continue
			}

			sent++
			log.InfoContext(ctx, "Sent words to group chat", "chat_id", chatID, "count", len(sample))
		}

		log.InfoContext(ctx, "Daily word broadcast finished",
			"chats", len(chatIDs), "sent", sent, "duration", time.Since(startTime))
		return nil
	}
}

// newSendLimiter allows one send per delay interval, with the first send
// passing immediately.
func newSendLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// formatWordsMessage renders the broadcast message: a fixed header
// followed by a 1-based numbered line per word.
func formatWordsMessage(header string, sample []string) string {
	var sb strings.Builder
	sb.WriteString(header)
	for i, word := range sample {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, word)
	}
	return sb.String()
}
