package main

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"komibot/internal/format"
	"komibot/internal/model"
)

// ═══════════════════════════════════════════════════════════════════
//  GAME COMMANDS
// ═══════════════════════════════════════════════════════════════════

type GuessCmd struct{}

func (c *GuessCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) {
	key := model.SessionKey{ChatID: msg.Chat.ID, UserID: msg.From.ID, Kind: model.KindGuess}
	session := StartGuessSession(ctx.Config)
	// Starting a game silently replaces any session under the same key.
	ctx.Games.Put(key, session)

	text := fmt.Sprintf(`🎯 <b>Number Guessing Game Started!</b>

<b>Player:</b> %s
<b>Range:</b> %d - %d
<b>Attempts:</b> %d

I'm thinking of a number between %d and %d.
Can you guess what it is?

<b>How to play:</b>
• Just type any number between %d-%d
• I'll tell you if it's higher or lower
• You have %d attempts to win!

<i>Good luck! 🍀</i>`,
		msg.From.FirstName,
		session.Min, session.Max, session.MaxAttempts,
		session.Min, session.Max,
		session.Min, session.Max, session.MaxAttempts)

	sendHTML(bot, msg.Chat.ID, text)
}
func (c *GuessCmd) Description() string { return "Number guessing game" }

type TTTCmd struct{}

func (c *TTTCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) {
	key := model.SessionKey{ChatID: msg.Chat.ID, UserID: msg.From.ID, Kind: model.KindTTT}
	session := NewTTTSession()
	ctx.Games.Put(key, session)

	text := fmt.Sprintf(`🎮 <b>Tic-Tac-Toe Game</b>
%s
<b>Player:</b> %s (❌)
<b>Opponent:</b> Bot (⭕)

<b>Your turn!</b> Tap any empty cell to make your move.

<i>Good luck! 🍀</i>`,
		tttBoardText(session.Board), msg.From.FirstName)

	sendHTMLWithKeyboard(bot, msg.Chat.ID, text, tttKeyboard(session, msg.Chat.ID, msg.From.ID))
}
func (c *TTTCmd) Description() string { return "Play tic-tac-toe against the bot" }

type RPSCmd struct{}

func (c *RPSCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) {
	sendHTMLWithKeyboard(bot, msg.Chat.ID, rpsIntroText(msg.From.FirstName), rpsKeyboard(msg.From.ID))
}
func (c *RPSCmd) Description() string { return "Rock Paper Scissors game" }

type QuitCmd struct{}

func (c *QuitCmd) Execute(ctx *AppContext, bot BotAPI, msg *tgbotapi.Message, args string) {
	// Abandon: the sessions are simply dropped, no terminal record kept.
	removed := ctx.Games.DeleteAllFor(msg.Chat.ID, msg.From.ID)
	if removed == 0 {
		reply(bot, msg.Chat.ID, "🤷 You have no active games. Try /guess or /ttt!")
		return
	}
	reply(bot, msg.Chat.ID, fmt.Sprintf("🏳️ Abandoned %d active %s. See you next round!",
		removed, format.Plural(removed, "game", "games")))
}
func (c *QuitCmd) Description() string { return "Quit your active games" }

// ═══════════════════════════════════════════════════════════════════
//  GUESS RENDERS
// ═══════════════════════════════════════════════════════════════════

func guessRangeErrorText(s *GuessSession) string {
	return fmt.Sprintf("❌ Please guess a number between %d and %d!", s.Min, s.Max)
}

func guessWonText(s *GuessSession, name string) string {
	attempts := len(s.Attempts)
	return fmt.Sprintf(`🎉 <b>Congratulations %s!</b>

You found the number <b>%d</b> in %d %s!

<b>🏆 Game Statistics:</b>
• Target Number: %d
• Your Attempts: %d/%d
• Success Rate: %.1f%%

<i>Excellent guessing! 🌟</i>`,
		name, s.Target, attempts, format.Plural(attempts, "attempt", "attempts"),
		s.Target, attempts, s.MaxAttempts,
		1.0/float64(attempts)*100)
}

func guessLostText(s *GuessSession, name string) string {
	return fmt.Sprintf(`💔 <b>Game Over, %s!</b>

The number was <b>%d</b>.
You used all %d attempts.

<b>📊 Your Attempts:</b>
%s

<i>Better luck next time! Use /guess to try again. 🎯</i>`,
		name, s.Target, s.MaxAttempts,
		format.JoinInts(s.Attempts, ", "))
}

func guessProgressText(result GuessResult, name string) string {
	return fmt.Sprintf(`🎯 <b>Keep Guessing, %s!</b>

<b>Your guess:</b> %d
<b>Hint:</b> %s
<b>Attempts left:</b> %d

<i>You're getting closer! 🎲</i>`,
		name, result.Guess, result.Hint, result.Remaining)
}

// ═══════════════════════════════════════════════════════════════════
//  TIC-TAC-TOE CALLBACKS & RENDERS
// ═══════════════════════════════════════════════════════════════════

// handleTTTCallback routes "ttt_"-prefixed button presses:
//
//	ttt_<chat>_<user>_<row>_<col>  board move
//	ttt_new_<chat>_<user>          restart
//	ttt_quit_<chat>_<user>         abandon
func handleTTTCallback(ctx *AppContext, bot BotAPI, query *tgbotapi.CallbackQuery) {
	if query.Message == nil || query.From == nil {
		return
	}
	chatID := query.Message.Chat.ID
	msgID := query.Message.MessageID
	data := query.Data

	if rest, ok := strings.CutPrefix(data, "ttt_new_"); ok {
		ownerChat, ownerUser, ok := parseOwner(rest)
		if !ok || ownerUser != query.From.ID {
			return
		}
		key := model.SessionKey{ChatID: ownerChat, UserID: ownerUser, Kind: model.KindTTT}
		session := NewTTTSession()
		ctx.Games.Put(key, session)
		editHTML(bot, chatID, msgID, tttProgressText(session, query.From.FirstName), keyboardPtr(tttKeyboard(session, ownerChat, ownerUser)))
		return
	}

	if rest, ok := strings.CutPrefix(data, "ttt_quit_"); ok {
		ownerChat, ownerUser, ok := parseOwner(rest)
		if !ok || ownerUser != query.From.ID {
			return
		}
		ctx.Games.Delete(model.SessionKey{ChatID: ownerChat, UserID: ownerUser, Kind: model.KindTTT})
		editHTML(bot, chatID, msgID, "🏳️ <b>Game abandoned.</b>\n\nUse /ttt to start a new one!", nil)
		return
	}

	parts := strings.Split(strings.TrimPrefix(data, "ttt_"), "_")
	if len(parts) != 4 {
		return
	}
	ownerChat, err1 := strconv.ParseInt(parts[0], 10, 64)
	ownerUser, err2 := strconv.ParseInt(parts[1], 10, 64)
	row, err3 := strconv.Atoi(parts[2])
	col, err4 := strconv.Atoi(parts[3])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return
	}
	// Only the session owner may move.
	if ownerUser != query.From.ID {
		return
	}

	key := model.SessionKey{ChatID: ownerChat, UserID: ownerUser, Kind: model.KindTTT}
	session, ok := ctx.Games.TTT(ownerChat, ownerUser)
	if !ok {
		bot.Request(tgbotapi.NewCallbackWithAlert(query.ID, "⏱ This game is over. Use /ttt to start a new one."))
		return
	}

	outcome := session.Apply(row, col)

	if outcome == TTTCellTaken {
		bot.Request(tgbotapi.NewCallbackWithAlert(query.ID, "🚫 That cell is taken! Pick an empty one."))
		return
	}
	if outcome.Terminal() {
		ctx.Games.Delete(key)
		editHTML(bot, chatID, msgID, tttFinalText(session, outcome, query.From.FirstName), nil)
		return
	}
	editHTML(bot, chatID, msgID, tttProgressText(session, query.From.FirstName), keyboardPtr(tttKeyboard(session, ownerChat, ownerUser)))
}

func parseOwner(rest string) (chatID, userID int64, ok bool) {
	parts := strings.Split(rest, "_")
	if len(parts) != 2 {
		return 0, 0, false
	}
	chatID, err1 := strconv.ParseInt(parts[0], 10, 64)
	userID, err2 := strconv.ParseInt(parts[1], 10, 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return chatID, userID, true
}

func cellEmoji(c model.Cell) string {
	switch c {
	case model.CellX:
		return "❌"
	case model.CellO:
		return "⭕"
	default:
		return "⬜"
	}
}

func tttBoardText(b [3][3]model.Cell) string {
	var sb strings.Builder
	sb.WriteString("\n")
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			sb.WriteString(cellEmoji(b[r][c]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func tttProgressText(s *TTTSession, name string) string {
	return fmt.Sprintf(`🎮 <b>Tic-Tac-Toe Game</b>
%s
<b>Player:</b> %s (❌)
<b>Opponent:</b> Bot (⭕)

<b>Your turn!</b> Tap any empty cell.`,
		tttBoardText(s.Board), name)
}

func tttFinalText(s *TTTSession, outcome TTTOutcome, name string) string {
	var status string
	switch outcome {
	case TTTPlayerWon:
		status = fmt.Sprintf("🎉 <b>%s wins!</b> Well played! 🏆", name)
	case TTTOpponentWon:
		status = "🤖 <b>The bot wins!</b> Better luck next time!"
	default:
		status = "🤝 <b>It's a draw!</b> Great minds think alike."
	}
	return fmt.Sprintf(`🎮 <b>Tic-Tac-Toe Game</b>
%s
%s

<i>Use /ttt for a rematch!</i>`,
		tttBoardText(s.Board), status)
}

func tttKeyboard(s *TTTSession, chatID, userID int64) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for r := 0; r < 3; r++ {
		var row []tgbotapi.InlineKeyboardButton
		for c := 0; c < 3; c++ {
			data := fmt.Sprintf("ttt_%d_%d_%d_%d", chatID, userID, r, c)
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(cellEmoji(s.Board[r][c]), data))
		}
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔄 New Game", fmt.Sprintf("ttt_new_%d_%d", chatID, userID)),
		tgbotapi.NewInlineKeyboardButtonData("❌ Quit", fmt.Sprintf("ttt_quit_%d_%d", chatID, userID)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func keyboardPtr(kb tgbotapi.InlineKeyboardMarkup) *tgbotapi.InlineKeyboardMarkup {
	return &kb
}

// ═══════════════════════════════════════════════════════════════════
//  ROCK PAPER SCISSORS (stateless, callback-driven)
// ═══════════════════════════════════════════════════════════════════

var rpsChoices = []string{"rock", "paper", "scissors"}

var rpsEmoji = map[string]string{
	"rock":     "🪨",
	"paper":    "📄",
	"scissors": "✂️",
}

// rpsBeats[a] is the choice a defeats.
var rpsBeats = map[string]string{
	"rock":     "scissors",
	"paper":    "rock",
	"scissors": "paper",
}

func rpsIntroText(name string) string {
	return fmt.Sprintf(`✂️ <b>Rock Paper Scissors</b>

<b>Player:</b> %s
<b>Opponent:</b> Bot

Choose your move and let's see who wins!

<b>Rules:</b>
• Rock beats Scissors
• Paper beats Rock
• Scissors beats Paper

<i>May the best player win! 🏆</i>`, name)
}

func rpsKeyboard(userID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🪨 Rock", fmt.Sprintf("rps_%d_rock", userID)),
			tgbotapi.NewInlineKeyboardButtonData("📄 Paper", fmt.Sprintf("rps_%d_paper", userID)),
			tgbotapi.NewInlineKeyboardButtonData("✂️ Scissors", fmt.Sprintf("rps_%d_scissors", userID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 New Game", fmt.Sprintf("rps_new_%d", userID)),
		),
	)
}

// handleRPSCallback resolves one round. No session is kept: each press is
// a complete game.
func handleRPSCallback(ctx *AppContext, bot BotAPI, query *tgbotapi.CallbackQuery) {
	if query.Message == nil || query.From == nil {
		return
	}
	chatID := query.Message.Chat.ID
	msgID := query.Message.MessageID

	if rest, ok := strings.CutPrefix(query.Data, "rps_new_"); ok {
		ownerID, err := strconv.ParseInt(rest, 10, 64)
		if err != nil || ownerID != query.From.ID {
			return
		}
		editHTML(bot, chatID, msgID, rpsIntroText(query.From.FirstName), keyboardPtr(rpsKeyboard(ownerID)))
		return
	}

	parts := strings.Split(strings.TrimPrefix(query.Data, "rps_"), "_")
	if len(parts) != 2 {
		return
	}
	ownerID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || ownerID != query.From.ID {
		return
	}
	player := parts[1]
	if _, ok := rpsBeats[player]; !ok {
		return
	}

	botChoice := rpsChoices[randIntn(len(rpsChoices))]

	var verdict string
	switch {
	case player == botChoice:
		verdict = "🤝 <b>It's a tie!</b>"
	case rpsBeats[player] == botChoice:
		verdict = fmt.Sprintf("🎉 <b>%s wins!</b>", query.From.FirstName)
	default:
		verdict = "🤖 <b>The bot wins!</b>"
	}

	text := fmt.Sprintf(`✂️ <b>Rock Paper Scissors</b>

<b>%s:</b> %s %s
<b>Bot:</b> %s %s

%s

<i>Tap New Game for a rematch!</i>`,
		query.From.FirstName, rpsEmoji[player], player,
		rpsEmoji[botChoice], botChoice,
		verdict)

	editHTML(bot, chatID, msgID, text, keyboardPtr(rpsKeyboard(ownerID)))
}
