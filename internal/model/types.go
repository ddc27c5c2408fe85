package model

import "time"

// User is a bot user as persisted in the user store.
// Users are created on first interaction and never deleted, only flagged.
type User struct {
	ID         int64
	Username   string
	FirstName  string
	LastName   string
	IsAdmin    bool
	IsBanned   bool
	IsPro      bool
	JoinPassed bool
	CreatedAt  time.Time
}

// DisplayName returns the best human-readable name for the user.
func (u User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.Username != "" {
		return "@" + u.Username
	}
	return "User"
}

// GameKind identifies a type of game session.
type GameKind string

const (
	KindGuess GameKind = "guess"
	KindTTT   GameKind = "ttt"
)

// SessionKey identifies one ephemeral game instance.
// A struct key avoids the delimiter-collision risk of concatenated strings.
type SessionKey struct {
	ChatID int64
	UserID int64
	Kind   GameKind
}

// Cell is the state of one tic-tac-toe board cell.
type Cell byte

const (
	CellEmpty Cell = ' '
	CellX     Cell = 'X' // player
	CellO     Cell = 'O' // bot opponent
)
