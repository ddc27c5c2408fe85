package main

import (
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Outbound send helpers. A failed send is a collaborator fault: it is
// logged and the operation abandoned, never retried.

func reply(bot BotAPI, chatID int64, text string) {
	safeSend(bot, tgbotapi.NewMessage(chatID, text))
}

func sendHTML(bot BotAPI, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	safeSend(bot, msg)
}

func sendHTMLWithKeyboard(bot BotAPI, chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = kb
	safeSend(bot, msg)
}

func editHTML(bot BotAPI, chatID int64, msgID int, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	if kb != nil {
		edit.ReplyMarkup = kb
	}
	safeSend(bot, edit)
}

func deleteMessage(bot BotAPI, chatID int64, msgID int) {
	if _, err := bot.Request(tgbotapi.NewDeleteMessage(chatID, msgID)); err != nil {
		slog.Error("Message delete failed", "chat", chatID, "msg", msgID, "err", err)
	}
}

func safeSend(bot BotAPI, c tgbotapi.Chattable) {
	if _, err := bot.Send(c); err != nil {
		slog.Error("Send failed", "err", err)
	}
}
