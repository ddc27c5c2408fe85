package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"komibot/internal/format"
)

// MembershipGate blocks users who have not joined the configured channels.
// A passed check is persisted on the user record so the membership API is
// not hit again on every command.
type MembershipGate struct {
	channels []string
	store    UserStore
}

func NewMembershipGate(cfg *Config, store UserStore) *MembershipGate {
	g := &MembershipGate{channels: cfg.ForceJoin.Channels, store: store}
	if g.Enabled() {
		slog.Info("Membership gate enabled", "channels", strings.Join(g.channels, ", "))
	}
	return g
}

func (g *MembershipGate) Enabled() bool {
	return len(g.channels) > 0
}

// Check reports whether the user may proceed and, when blocked, which
// channels they still have to join. A channel whose membership cannot be
// queried counts as not joined.
func (g *MembershipGate) Check(bot BotAPI, userID int64) (bool, []string) {
	if !g.Enabled() || userID == 0 {
		return true, nil
	}

	if u, ok, err := g.store.GetUser(userID); err == nil && ok && u.JoinPassed {
		return true, nil
	}

	var missing []string
	for _, channel := range g.channels {
		if !g.isMember(bot, channel, userID) {
			missing = append(missing, channel)
		}
	}
	if len(missing) > 0 {
		return false, missing
	}

	if err := g.store.SetJoinPassed(userID, true); err != nil {
		slog.Error("Failed to persist membership check", "user", userID, "err", err)
	}
	return true, nil
}

func (g *MembershipGate) isMember(bot BotAPI, channel string, userID int64) bool {
	resp, err := bot.Request(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			SuperGroupUsername: channel,
			UserID:             userID,
		},
	})
	if err != nil {
		slog.Warn("Membership lookup failed", "channel", channel, "user", userID, "err", err)
		return false
	}

	var member tgbotapi.ChatMember
	if err := json.Unmarshal(resp.Result, &member); err != nil {
		slog.Warn("Membership response unreadable", "channel", channel, "user", userID, "err", err)
		return false
	}

	switch member.Status {
	case "left", "kicked":
		return false
	}
	return member.Status != ""
}

func forceJoinText(missing []string) string {
	var sb strings.Builder
	sb.WriteString("🔒 <b>Join Required Channels</b>\n\n")
	sb.WriteString("To use this bot, you must join our official channels first:\n\n")
	sb.WriteString("<b>📢 Required Channels:</b>\n")
	for _, ch := range missing {
		sb.WriteString("• " + ch + "\n")
	}
	sb.WriteString("\n<b>📋 Instructions:</b>\n")
	sb.WriteString("1. Join the channels above\n")
	sb.WriteString("2. Tap \"✅ Check Membership\"\n")
	sb.WriteString("3. Start using the bot!")
	return sb.String()
}

func forceJoinKeyboard(missing []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, ch := range missing {
		url := "https://t.me/" + strings.TrimPrefix(ch, "@")
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("📢 Join "+ch, url),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✅ Check Membership", "check_membership"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func sendForceJoinPrompt(bot BotAPI, chatID int64, missing []string) {
	sendHTMLWithKeyboard(bot, chatID, forceJoinText(missing), forceJoinKeyboard(missing))
}

// handleCheckMembership re-runs the gate when the user claims to have joined.
func handleCheckMembership(ctx *AppContext, bot BotAPI, query *tgbotapi.CallbackQuery) {
	if query.Message == nil || query.From == nil {
		return
	}
	passed, missing := ctx.Joins.Check(bot, query.From.ID)
	if !passed {
		bot.Request(tgbotapi.NewCallbackWithAlert(query.ID,
			fmt.Sprintf("❌ You still need to join %d %s.",
				len(missing), format.Plural(len(missing), "channel", "channels"))))
		return
	}
	editHTML(bot, query.Message.Chat.ID, query.Message.MessageID,
		"✅ <b>Thanks for joining!</b>\n\nYou can use the bot now. Try /start!", nil)
}
