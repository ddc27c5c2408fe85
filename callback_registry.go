package main

import (
	"log/slog"
	"runtime/debug"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// CallbackFunc handles one inline-button interaction.
type CallbackFunc func(ctx *AppContext, bot BotAPI, query *tgbotapi.CallbackQuery)

// CallbackRegistry routes callback data to handlers. Tokens ending in "_"
// are prefix registrations (e.g. "ttt_" matches "ttt_1_2_0_0"). When several
// prefixes match, the longest one wins regardless of registration order.
type CallbackRegistry struct {
	exact    map[string]CallbackFunc
	prefixes map[string]CallbackFunc
}

func NewCallbackRegistry() *CallbackRegistry {
	return &CallbackRegistry{
		exact:    make(map[string]CallbackFunc),
		prefixes: make(map[string]CallbackFunc),
	}
}

// Register adds a callback handler for a token.
func (r *CallbackRegistry) Register(token string, fn CallbackFunc) {
	if strings.HasSuffix(token, "_") {
		r.prefixes[token] = fn
		return
	}
	r.exact[token] = fn
}

// Dispatch acknowledges the interaction and routes it to a handler.
// The platform requires an ack for every callback press, even when no
// handler matches, to clear the client-side spinner.
func (r *CallbackRegistry) Dispatch(ctx *AppContext, bot BotAPI, query *tgbotapi.CallbackQuery) {
	if query == nil {
		return
	}
	bot.Request(tgbotapi.NewCallback(query.ID, ""))

	fn := r.lookup(query.Data)
	if fn == nil {
		return
	}

	var userID int64
	if query.From != nil {
		userID = query.From.ID
	}

	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("Callback handler panicked", "data", query.Data, "user", userID, "panic", rec, "stack", string(debug.Stack()))
			// Transient notice, not a chat message.
			bot.Request(tgbotapi.NewCallbackWithAlert(query.ID, "⚠️ Something went wrong."))
		}
	}()

	fn(ctx, bot, query)
}

func (r *CallbackRegistry) lookup(data string) CallbackFunc {
	if fn, ok := r.exact[data]; ok {
		return fn
	}

	var best string
	for prefix := range r.prefixes {
		if strings.HasPrefix(data, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return nil
	}
	return r.prefixes[best]
}
