package main

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Command is the interface that all bot commands must implement
type Command interface {
	Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string)
	Description() string
}

// CommandFlag marks authorization requirements at registration time.
type CommandFlag int

const (
	AdminOnly CommandFlag = iota + 1
	GroupOnly
)

type registration struct {
	name      string
	cmd       Command
	adminOnly bool
	groupOnly bool
}

// CommandRegistry holds the command table. Registration order is preserved
// for /help; re-registering a name overwrites in place (last wins).
type CommandRegistry struct {
	commands map[string]*registration
	order    []string
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[string]*registration),
	}
}

// Register adds a command to the registry.
func (r *CommandRegistry) Register(name string, cmd Command, flags ...CommandFlag) {
	reg := &registration{name: name, cmd: cmd}
	for _, f := range flags {
		switch f {
		case AdminOnly:
			reg.adminOnly = true
		case GroupOnly:
			reg.groupOnly = true
		}
	}

	if _, exists := r.commands[name]; !exists {
		r.order = append(r.order, name)
	}
	r.commands[name] = reg
}

// Execute resolves and runs a command after the authorization pipeline.
// Unknown commands are silently ignored (returns false). Authorization
// failures reply with a fixed denial and stop. A panicking handler is
// contained here; the dispatch loop must never die because of one command.
func (r *CommandRegistry) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message) bool {
	if msg == nil {
		return false
	}
	cmdName := msg.Command()
	if cmdName == "" {
		return false
	}
	reg, ok := r.commands[cmdName]
	if !ok {
		return false
	}

	user := msg.From
	var userID int64
	if user != nil {
		userID = user.ID
		// Every command invocation creates or refreshes the user record,
		// regardless of how authorization turns out.
		if err := ctx.Store.UpsertUser(user.ID, user.UserName, user.FirstName, user.LastName); err != nil {
			slog.Error("User upsert failed", "user", user.ID, "err", err)
		}
	}

	if ctx.Perms.IsBanned(userID) {
		reply(bot, msg.Chat.ID, "❌ You are banned from using this bot.")
		return true
	}
	if passed, missing := ctx.Joins.Check(bot, userID); !passed {
		sendForceJoinPrompt(bot, msg.Chat.ID, missing)
		return true
	}
	if reg.adminOnly && !ctx.Perms.IsAdmin(userID) {
		reply(bot, msg.Chat.ID, "❌ This command is for admins only.")
		return true
	}
	if reg.groupOnly && msg.Chat.IsPrivate() {
		reply(bot, msg.Chat.ID, "❌ This command can only be used in groups.")
		return true
	}

	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("Command handler panicked", "cmd", cmdName, "user", userID, "panic", rec, "stack", string(debug.Stack()))
			reply(bot, msg.Chat.ID, "❌ An error occurred while executing the command.")
		}
	}()

	reg.cmd.Execute(ctx, bot, msg, msg.CommandArguments())
	slog.Info("Command executed", "cmd", cmdName, "user", userID)
	return true
}

// ListFor builds the /help listing: general commands always, the admin
// section only for admins. Order follows registration order.
func (r *CommandRegistry) ListFor(ctx *AppContext, userID int64) string {
	isAdmin := ctx.Perms.IsAdmin(userID)

	var general, admin []string
	for _, name := range r.order {
		reg := r.commands[name]
		line := fmt.Sprintf("/%s - %s", name, reg.cmd.Description())
		if reg.adminOnly {
			admin = append(admin, line)
		} else {
			general = append(general, line)
		}
	}

	var b strings.Builder
	b.WriteString("<b>📋 Available Commands:</b>\n\n")

	if len(general) > 0 {
		b.WriteString("<b>🔹 General Commands:</b>\n")
		b.WriteString(strings.Join(general, "\n"))
		b.WriteString("\n\n")
	}
	if isAdmin && len(admin) > 0 {
		b.WriteString("<b>🔸 Admin Commands:</b>\n")
		b.WriteString(strings.Join(admin, "\n"))
	}

	return strings.TrimSpace(b.String())
}
