package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewUpdateHandler returns the default handler for updates that don't
// match a registered command: membership changes (the bot being added to
// a chat) and regular text messages that may carry the collection tag.
func NewUpdateHandler(deps HandlerDeps) bot.HandlerFunc {
	return updateHandler{deps}.Handle
}

type updateHandler struct {
	deps HandlerDeps
}

func (h updateHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	switch {
	case update.MyChatMember != nil:
		h.handleMembershipChange(ctx, update.MyChatMember)
	case update.Message != nil && update.Message.Text != "":
		h.handleMessage(ctx, update.Message)
	}
}

// handleMembershipChange registers a group chat when the bot is admitted
// as a member or administrator. Personal chats never get a registration.
func (h updateHandler) handleMembershipChange(ctx context.Context, change *models.ChatMemberUpdated) {
	log := h.deps.Logger.With("handler", "membership")

	status := change.NewChatMember.Type
	if status != models.ChatMemberTypeMember && status != models.ChatMemberTypeAdministrator {
		log.DebugContext(ctx, "Ignoring membership change", "chat_id", change.Chat.ID, "status", status)
		return
	}

	chatID := change.Chat.ID
	if chatID >= 0 {
		log.InfoContext(ctx, "Skipping registration for personal chat", "chat_id", chatID)
		return
	}

	log.InfoContext(ctx, "Bot added to group chat", "chat_id", chatID, "title", change.Chat.Title)

	if err := h.deps.Store.EnsureChat(ctx, chatID, change.Chat.Title); err != nil {
		// Registration is self-healing on first insert, so a failure here
		// only costs a log line.
		log.ErrorContext(ctx, "Failed to register chat", "chat_id", chatID, "error", err)
	}
}

// handleMessage extracts tagged words from a group message and stores
// them. The sender gets no acknowledgment either way.
func (h updateHandler) handleMessage(ctx context.Context, msg *models.Message) {
	log := h.deps.Logger.With("handler", "words")

	chatID := msg.Chat.ID
	if chatID >= 0 {
		log.DebugContext(ctx, "Ignoring message from personal chat", "chat_id", chatID)
		return
	}

	extracted := h.deps.Extractor.Extract(msg.Text)
	if len(extracted) == 0 {
		log.DebugContext(ctx, "Message carries no tagged words", "chat_id", chatID)
		return
	}

	added, err := h.deps.Store.AddWords(ctx, chatID, extracted)
	if err != nil {
		log.ErrorContext(ctx, "Failed to store words", "chat_id", chatID, "error", err)
		return
	}

	var userID int64
	if msg.From != nil {
		userID = msg.From.ID
	}
	log.InfoContext(ctx, "Stored tagged words",
		"chat_id", chatID, "user_id", userID, "extracted", len(extracted), "added", added)
}
