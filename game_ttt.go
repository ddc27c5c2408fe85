package main

import (
	"komibot/internal/model"
)

// TTTOutcome classifies the result of applying one player move.
type TTTOutcome int

const (
	// TTTCellTaken is a guard rejection: the board is left untouched and
	// no opponent move is triggered.
	TTTCellTaken TTTOutcome = iota
	TTTContinue
	TTTPlayerWon
	TTTOpponentWon
	TTTDraw
)

// Terminal reports whether the outcome ends the session.
func (o TTTOutcome) Terminal() bool {
	return o == TTTPlayerWon || o == TTTOpponentWon || o == TTTDraw
}

// TTTSession is one active tic-tac-toe game. The player is X, the bot
// opponent is O and moves uniformly at random.
type TTTSession struct {
	Board [3][3]model.Cell
	Turn  model.Cell
	VsAI  bool
}

func (s *TTTSession) Kind() model.GameKind { return model.KindTTT }

func NewTTTSession() *TTTSession {
	s := &TTTSession{Turn: model.CellX, VsAI: true}
	for r := range s.Board {
		for c := range s.Board[r] {
			s.Board[r][c] = model.CellEmpty
		}
	}
	return s
}

// Apply places the player's mark and, when the game goes on, answers with
// a random opponent move. A move into an occupied cell is rejected without
// touching the board.
func (s *TTTSession) Apply(row, col int) TTTOutcome {
	if row < 0 || row > 2 || col < 0 || col > 2 {
		return TTTCellTaken
	}
	if s.Board[row][col] != model.CellEmpty {
		return TTTCellTaken
	}

	s.Board[row][col] = model.CellX
	if winner, ok := CheckWinner(s.Board); ok && winner == model.CellX {
		return TTTPlayerWon
	}
	if boardFull(s.Board) {
		return TTTDraw
	}

	if s.VsAI {
		r, c := s.randomEmptyCell()
		s.Board[r][c] = model.CellO
		if winner, ok := CheckWinner(s.Board); ok && winner == model.CellO {
			return TTTOpponentWon
		}
		if boardFull(s.Board) {
			return TTTDraw
		}
	}

	return TTTContinue
}

func (s *TTTSession) randomEmptyCell() (int, int) {
	type cell struct{ r, c int }
	var empty []cell
	for r := range s.Board {
		for c := range s.Board[r] {
			if s.Board[r][c] == model.CellEmpty {
				empty = append(empty, cell{r, c})
			}
		}
	}
	pick := empty[randIntn(len(empty))]
	return pick.r, pick.c
}

// CheckWinner scans the three rows, three columns and two diagonals for a
// line of three identical non-empty marks.
func CheckWinner(b [3][3]model.Cell) (model.Cell, bool) {
	for r := 0; r < 3; r++ {
		if b[r][0] != model.CellEmpty && b[r][0] == b[r][1] && b[r][1] == b[r][2] {
			return b[r][0], true
		}
	}
	for c := 0; c < 3; c++ {
		if b[0][c] != model.CellEmpty && b[0][c] == b[1][c] && b[1][c] == b[2][c] {
			return b[0][c], true
		}
	}
	if b[1][1] != model.CellEmpty {
		if b[0][0] == b[1][1] && b[1][1] == b[2][2] {
			return b[1][1], true
		}
		if b[0][2] == b[1][1] && b[1][1] == b[2][0] {
			return b[1][1], true
		}
	}
	return model.CellEmpty, false
}

func boardFull(b [3][3]model.Cell) bool {
	for r := range b {
		for c := range b[r] {
			if b[r][c] == model.CellEmpty {
				return false
			}
		}
	}
	return true
}

// FilledCells counts the non-empty cells on the board.
func FilledCells(b [3][3]model.Cell) int {
	n := 0
	for r := range b {
		for c := range b[r] {
			if b[r][c] != model.CellEmpty {
				n++
			}
		}
	}
	return n
}
