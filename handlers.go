package main

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"komibot/internal/model"
)

// handleUpdate routes one platform event. Updates are processed serially on
// the dispatch goroutine; the session stores rely on that single-consumer
// order for read-modify-write safety.
func handleUpdate(ctx *AppContext, bot BotAPI, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		ctx.Callbacks.Dispatch(ctx, bot, update.CallbackQuery)
		return
	}
	if update.Message == nil {
		return
	}
	if update.Message.IsCommand() {
		ctx.Commands.Execute(ctx, bot, update.Message)
		return
	}
	handleMessage(ctx, bot, update.Message)
}

// handleMessage covers plain (non-command) text. The only path that cares
// is a purely numeric message from a user with an active guess session in
// the same chat; everything else is ignored.
func handleMessage(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message) {
	if msg.From == nil || !isDigits(msg.Text) {
		return
	}
	if render, ok := tryApplyGuess(ctx, msg.Chat.ID, msg.From, msg.Text); ok {
		sendHTML(bot, msg.Chat.ID, render)
	}
}

// tryApplyGuess feeds numeric text into the user's active guess session.
// It returns the render for the chat and whether anything should be sent.
// Exactly one render is produced per guess that reaches the session; none
// when there is no session at all.
func tryApplyGuess(ctx *AppContext, chatID int64, user *tgbotapi.User, text string) (string, bool) {
	session, ok := ctx.Games.Guess(chatID, user.ID)
	if !ok {
		return "", false
	}

	guess, err := strconv.Atoi(text)
	if err != nil {
		return "", false
	}

	result := session.Apply(guess)

	switch result.Outcome {
	case GuessOutOfRange:
		return guessRangeErrorText(session), true
	case GuessDuplicate:
		return "🔄 You already guessed that number! Try a different one.", true
	}

	if result.Outcome.Terminal() {
		ctx.Games.Delete(model.SessionKey{ChatID: chatID, UserID: user.ID, Kind: model.KindGuess})
	}

	switch result.Outcome {
	case GuessWon:
		return guessWonText(session, user.FirstName), true
	case GuessLost:
		return guessLostText(session, user.FirstName), true
	default:
		return guessProgressText(result, user.FirstName), true
	}
}

// isDigits reports whether s is non-empty and purely numeric. Signed or
// decorated numbers fall through to generic text handling on purpose.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
