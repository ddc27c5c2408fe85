package main

import (
	"encoding/json"
	"sort"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"komibot/internal/model"
)

type fakeBot struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	nextID   int

	// memberStatus is returned for membership lookups; empty means the
	// lookup yields no readable member (treated as not joined).
	memberStatus string
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.sent = append(b.sent, c)
	b.nextID++
	return tgbotapi.Message{MessageID: b.nextID, Chat: &tgbotapi.Chat{ID: 1}}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.requests = append(b.requests, c)
	if _, ok := c.(tgbotapi.GetChatMemberConfig); ok && b.memberStatus != "" {
		raw, _ := json.Marshal(tgbotapi.ChatMember{Status: b.memberStatus})
		return &tgbotapi.APIResponse{Ok: true, Result: raw}, nil
	}
	return &tgbotapi.APIResponse{}, nil
}

// textOf extracts the outbound text from a captured Chattable.
func textOf(c tgbotapi.Chattable) string {
	switch v := c.(type) {
	case tgbotapi.MessageConfig:
		return v.Text
	case tgbotapi.EditMessageTextConfig:
		return v.Text
	default:
		return ""
	}
}

func (b *fakeBot) lastText(t *testing.T) string {
	t.Helper()
	if len(b.sent) == 0 {
		t.Fatal("no messages sent")
	}
	return textOf(b.sent[len(b.sent)-1])
}

// memStore is an in-memory UserStore for tests that do not need SQLite.
type memStore struct {
	users   map[int64]model.User
	upserts int
}

func newMemStore() *memStore {
	return &memStore{users: make(map[int64]model.User)}
}

func (s *memStore) UpsertUser(id int64, username, firstName, lastName string) error {
	s.upserts++
	u, ok := s.users[id]
	if !ok {
		u = model.User{ID: id, CreatedAt: time.Now()}
	}
	u.Username = username
	u.FirstName = firstName
	u.LastName = lastName
	s.users[id] = u
	return nil
}

func (s *memStore) GetUser(id int64) (model.User, bool, error) {
	u, ok := s.users[id]
	return u, ok, nil
}

func (s *memStore) setFlag(id int64, mutate func(*model.User)) error {
	u, ok := s.users[id]
	if !ok {
		u = model.User{ID: id, CreatedAt: time.Now()}
	}
	mutate(&u)
	s.users[id] = u
	return nil
}

func (s *memStore) SetAdmin(id int64, v bool) error {
	return s.setFlag(id, func(u *model.User) { u.IsAdmin = v })
}

func (s *memStore) SetBan(id int64, v bool) error {
	return s.setFlag(id, func(u *model.User) { u.IsBanned = v })
}

func (s *memStore) SetPro(id int64, v bool) error {
	return s.setFlag(id, func(u *model.User) { u.IsPro = v })
}

func (s *memStore) SetJoinPassed(id int64, v bool) error {
	return s.setFlag(id, func(u *model.User) { u.JoinPassed = v })
}

func (s *memStore) ListUsers() ([]model.User, error) {
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) Close() error { return nil }

// newTestAppContext builds an isolated context over an in-memory store.
// User 1 is an admin, user 666 is banned.
func newTestAppContext() (*AppContext, *memStore) {
	store := newMemStore()
	cfg := defaultConfig()
	cfg.BotToken = "test-token"

	ctx := InitApp(cfg, store)
	ctx.Perms.SeedAdmins([]int64{1})
	ctx.Perms.Ban(666)
	return ctx, store
}

func command(text string, from int64, chatID int64) *tgbotapi.Message {
	cmdLen := len(text)
	for i, r := range text {
		if r == ' ' {
			cmdLen = i
			break
		}
	}
	return &tgbotapi.Message{
		Text:     text,
		From:     &tgbotapi.User{ID: from, FirstName: "Tester"},
		Chat:     &tgbotapi.Chat{ID: chatID, Type: "private"},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}},
	}
}

func TestHandleUpdateCommandRoute(t *testing.T) {
	ctx, _ := newTestAppContext()
	bot := &fakeBot{}

	handleUpdate(ctx, bot, tgbotapi.Update{Message: command("/ping", 2, 1)})
	if len(bot.sent) == 0 {
		t.Fatal("expected a reply for /ping")
	}
}

func TestHandleUpdateCallbackRoute(t *testing.T) {
	ctx, _ := newTestAppContext()
	bot := &fakeBot{}

	query := &tgbotapi.CallbackQuery{
		ID:      "1",
		Data:    "about_bot",
		From:    &tgbotapi.User{ID: 2, FirstName: "Tester"},
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}, MessageID: 10},
	}
	handleUpdate(ctx, bot, tgbotapi.Update{CallbackQuery: query})

	if len(bot.requests) == 0 {
		t.Fatal("expected callback ack request")
	}
	if len(bot.sent) == 0 {
		t.Fatal("expected the menu message to be edited")
	}
}

func TestHandleUpdateEmptyIgnored(t *testing.T) {
	ctx, _ := newTestAppContext()
	bot := &fakeBot{}

	handleUpdate(ctx, bot, tgbotapi.Update{})
	if len(bot.sent) != 0 || len(bot.requests) != 0 {
		t.Fatal("empty update should produce no traffic")
	}
}
