package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/go-telegram/bot/models"

	"wordsbot/internal/bot/handlers"
	"wordsbot/internal/config"
	"wordsbot/internal/words"
)

type fakeStore struct {
	ensured map[int64]string
	added   map[int64][]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		ensured: make(map[int64]string),
		added:   make(map[int64][]string),
	}
}

func (s *fakeStore) Ping(context.Context) error              { return nil }
func (s *fakeStore) RunSQLMaintenance(context.Context) error { return nil }

func (s *fakeStore) EnsureChat(_ context.Context, chatID int64, title string) error {
	s.ensured[chatID] = title
	return nil
}

func (s *fakeStore) AddWords(_ context.Context, chatID int64, ws []string) (int, error) {
	s.added[chatID] = append(s.added[chatID], ws...)
	return len(ws), nil
}

func (s *fakeStore) ListActiveChats(context.Context) ([]int64, error) { return nil, nil }

func (s *fakeStore) RandomWords(context.Context, int64, int) ([]string, error) {
	return nil, nil
}

func newDeps(store *fakeStore) handlers.HandlerDeps {
	return handlers.HandlerDeps{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:    &config.Config{},
		Store:     store,
		Extractor: words.NewExtractor(words.DefaultTag),
	}
}

func messageUpdate(chatID int64, text string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			Chat: models.Chat{ID: chatID},
			From: &models.User{ID: 7},
			Text: text,
		},
	}
}

func TestUpdateHandlerStoresTaggedGroupMessage(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	handle := handlers.NewUpdateHandler(newDeps(store))

	handle(context.Background(), nil, messageUpdate(-1001, "#WordsToLearn\nfoo\nbar"))

	want := []string{"foo", "bar"}
	if !slices.Equal(store.added[-1001], want) {
		t.Fatalf("stored words = %v, want %v", store.added[-1001], want)
	}
}

func TestUpdateHandlerIgnoresUntaggedAndPersonal(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		chatID int64
		text   string
	}{
		{name: "untagged group message", chatID: -1001, text: "just chatting"},
		{name: "tag not at start", chatID: -1001, text: "hello #WordsToLearn\nfoo"},
		{name: "tagged message from personal chat", chatID: 42, text: "#WordsToLearn\nfoo"},
		{name: "empty text", chatID: -1001, text: ""},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := newFakeStore()
			handle := handlers.NewUpdateHandler(newDeps(store))

			handle(context.Background(), nil, messageUpdate(tc.chatID, tc.text))

			if len(store.added) != 0 {
				t.Fatalf("words stored for %v, want none", store.added)
			}
		})
	}
}

func membershipUpdate(chatID int64, title string, member models.ChatMember) *models.Update {
	return &models.Update{
		MyChatMember: &models.ChatMemberUpdated{
			Chat:          models.Chat{ID: chatID, Title: title},
			NewChatMember: member,
		},
	}
}

func TestUpdateHandlerRegistersGroupOnAdmission(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	handle := handlers.NewUpdateHandler(newDeps(store))

	handle(context.Background(), nil, membershipUpdate(-1001, "study group", models.ChatMember{
		Type:   models.ChatMemberTypeMember,
		Member: &models.ChatMemberMember{},
	}))

	if title, ok := store.ensured[-1001]; !ok || title != "study group" {
		t.Fatalf("ensured chats = %v, want -1001 registered with title", store.ensured)
	}
}

func TestUpdateHandlerSkipsNonGroupAdmissionAndDepartures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		chatID int64
		member models.ChatMember
	}{
		{
			name:   "personal chat admission",
			chatID: 42,
			member: models.ChatMember{Type: models.ChatMemberTypeMember, Member: &models.ChatMemberMember{}},
		},
		{
			name:   "bot removed from group",
			chatID: -1001,
			member: models.ChatMember{Type: models.ChatMemberTypeLeft, Left: &models.ChatMemberLeft{}},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := newFakeStore()
			handle := handlers.NewUpdateHandler(newDeps(store))

			handle(context.Background(), nil, membershipUpdate(tc.chatID, "x", tc.member))

			if len(store.ensured) != 0 {
				t.Fatalf("ensured chats = %v, want none", store.ensured)
			}
		})
	}
}
