package database

import "time"

// Chat represents a Telegram conversation known to the bot. Group chats
// have negative IDs; only groups are eligible for word storage and the
// daily broadcast. Rows are created lazily and never deleted.
type Chat struct {
	ChatID    int64     `db:"chat_id"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
}

// Word is a single vocabulary entry belonging to exactly one chat.
// Words are unique per chat and immutable once stored.
type Word struct {
	ID        uint      `db:"id"`
	ChatID    int64     `db:"chat_id"`
	Word      string    `db:"word"`
	CreatedAt time.Time `db:"created_at"`
}
