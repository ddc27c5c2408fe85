package main

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"komibot/internal/format"
)

// ═══════════════════════════════════════════════════════════════════
//  BASIC COMMANDS
// ═══════════════════════════════════════════════════════════════════

type StartCmd struct{}

func (c *StartCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) {
	sendHTMLWithKeyboard(bot, msg.Chat.ID, startText(msg.From.FirstName), startKeyboard())
}
func (c *StartCmd) Description() string { return "Start the bot" }

type HelpCmd struct{}

func (c *HelpCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) {
	sendHTML(bot, msg.Chat.ID, ctx.Commands.ListFor(ctx, msg.From.ID))
}
func (c *HelpCmd) Description() string { return "Show available commands" }

type UIDCmd struct{}

func (c *UIDCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) {
	sendHTML(bot, msg.Chat.ID, uidText(msg.From, msg.Chat.ID))
}
func (c *UIDCmd) Description() string { return "Show your Telegram ID" }

type PingCmd struct{}

func (c *PingCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) {
	uptime := time.Since(ctx.StartTime)
	text := fmt.Sprintf(`🏓 <b>Pong!</b>

<b>Status:</b> ✅ Online
<b>Uptime:</b> %s
<b>Active games:</b> %d`,
		format.FormatUptime(uint64(uptime.Seconds())), ctx.Games.Len())
	sendHTML(bot, msg.Chat.ID, text)
}
func (c *PingCmd) Description() string { return "Check if the bot is alive" }

type AboutCmd struct{}

func (c *AboutCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) {
	sendHTML(bot, msg.Chat.ID, aboutText())
}
func (c *AboutCmd) Description() string { return "About this bot" }

// ═══════════════════════════════════════════════════════════════════
//  MENU TEXTS & KEYBOARDS
// ═══════════════════════════════════════════════════════════════════

func startText(name string) string {
	return fmt.Sprintf(`👋 <b>Welcome, %s!</b>

I'm <b>Komi</b>, your game companion bot.

<b>🎮 Games:</b>
/guess - Number guessing game
/ttt - Tic-tac-toe against me
/rps - Rock Paper Scissors

<b>ℹ️ Info:</b>
/help - All available commands
/uid - Your Telegram ID

<i>Pick a button below or just type a command!</i>`, name)
}

func startKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🆔 My ID", "get_uid"),
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ About", "about_bot"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Commands", "help_menu"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Close", "close_menu"),
		),
	)
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", "back_start"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Close", "close_menu"),
		),
	)
}

func uidText(user *tgbotapi.User, chatID int64) string {
	username := user.UserName
	if username == "" {
		username = "-"
	} else {
		username = "@" + username
	}
	return fmt.Sprintf(`🆔 <b>Your Telegram Info</b>

<b>User ID:</b> <code>%d</code>
<b>Username:</b> %s
<b>First Name:</b> %s
<b>Chat ID:</b> <code>%d</code>`,
		user.ID, username, user.FirstName, chatID)
}

func aboutText() string {
	return `🤖 <b>About Komi</b>

A conversational game bot for Telegram.

<b>What I can do:</b>
• 🎯 Number guessing with hints
• 🎮 Tic-tac-toe with inline boards
• ✂️ Rock Paper Scissors

Built with Go and a lot of ☕.

<i>Type /help to see every command.</i>`
}

// ═══════════════════════════════════════════════════════════════════
//  MENU CALLBACKS
// ═══════════════════════════════════════════════════════════════════

func handleGetUID(ctx *AppContext, bot BotAPI, query *tgbotapi.CallbackQuery) {
	if query.Message == nil || query.From == nil {
		return
	}
	editHTML(bot, query.Message.Chat.ID, query.Message.MessageID,
		uidText(query.From, query.Message.Chat.ID), keyboardPtr(backKeyboard()))
}

func handleAboutBot(ctx *AppContext, bot BotAPI, query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		return
	}
	editHTML(bot, query.Message.Chat.ID, query.Message.MessageID,
		aboutText(), keyboardPtr(backKeyboard()))
}

func handleHelpMenu(ctx *AppContext, bot BotAPI, query *tgbotapi.CallbackQuery) {
	if query.Message == nil || query.From == nil {
		return
	}
	editHTML(bot, query.Message.Chat.ID, query.Message.MessageID,
		ctx.Commands.ListFor(ctx, query.From.ID), keyboardPtr(backKeyboard()))
}

func handleBackStart(ctx *AppContext, bot BotAPI, query *tgbotapi.CallbackQuery) {
	if query.Message == nil || query.From == nil {
		return
	}
	editHTML(bot, query.Message.Chat.ID, query.Message.MessageID,
		startText(query.From.FirstName), keyboardPtr(startKeyboard()))
}

func handleCloseMenu(ctx *AppContext, bot BotAPI, query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		return
	}
	deleteMessage(bot, query.Message.Chat.ID, query.Message.MessageID)
}
