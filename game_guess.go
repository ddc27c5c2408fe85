package main

import (
	"komibot/internal/model"
)

// GuessOutcome classifies the result of applying one guess.
type GuessOutcome int

const (
	// GuessOutOfRange and GuessDuplicate are guard rejections: the session
	// is left untouched and the guess is not recorded.
	GuessOutOfRange GuessOutcome = iota
	GuessDuplicate
	GuessTooLow
	GuessTooHigh
	GuessWon
	GuessLost
)

// Terminal reports whether the outcome ends the session.
func (o GuessOutcome) Terminal() bool {
	return o == GuessWon || o == GuessLost
}

// Accepted reports whether the guess was recorded in the session.
func (o GuessOutcome) Accepted() bool {
	return o != GuessOutOfRange && o != GuessDuplicate
}

// GuessResult is what a single applied guess produced.
type GuessResult struct {
	Outcome   GuessOutcome
	Guess     int
	Hint      string
	Remaining int
}

// GuessSession is one active number-guessing game.
type GuessSession struct {
	Target      int
	Min         int
	Max         int
	MaxAttempts int
	Attempts    []int
	Hints       []string
}

func (s *GuessSession) Kind() model.GameKind { return model.KindGuess }

// NewGuessSession creates a session with a fixed target. Tests use this
// directly; production code goes through StartGuessSession.
func NewGuessSession(cfg *Config, target int) *GuessSession {
	return &GuessSession{
		Target:      target,
		Min:         cfg.Guess.Min,
		Max:         cfg.Guess.Max,
		MaxAttempts: cfg.Guess.MaxAttempts,
	}
}

// StartGuessSession creates a session with a uniformly drawn target.
func StartGuessSession(cfg *Config) *GuessSession {
	target := cfg.Guess.Min + randIntn(cfg.Guess.Max-cfg.Guess.Min+1)
	return NewGuessSession(cfg, target)
}

// Apply runs one guess through the state machine. Guard rejections
// (out-of-range, duplicate) mutate nothing. An accepted guess is appended
// to Attempts exactly once, together with its hint.
func (s *GuessSession) Apply(guess int) GuessResult {
	if guess < s.Min || guess > s.Max {
		return GuessResult{Outcome: GuessOutOfRange, Guess: guess}
	}
	for _, prev := range s.Attempts {
		if prev == guess {
			return GuessResult{Outcome: GuessDuplicate, Guess: guess}
		}
	}

	s.Attempts = append(s.Attempts, guess)

	switch {
	case guess == s.Target:
		hint := "🎉 Correct! You won!"
		s.Hints = append(s.Hints, hint)
		return GuessResult{Outcome: GuessWon, Guess: guess, Hint: hint}

	case len(s.Attempts) >= s.MaxAttempts:
		hint := "💔 Game over!"
		s.Hints = append(s.Hints, hint)
		return GuessResult{Outcome: GuessLost, Guess: guess, Hint: hint}

	case guess < s.Target:
		hint := "📈 Too low! Try higher"
		s.Hints = append(s.Hints, hint)
		return GuessResult{Outcome: GuessTooLow, Guess: guess, Hint: hint, Remaining: s.MaxAttempts - len(s.Attempts)}

	default:
		hint := "📉 Too high! Try lower"
		s.Hints = append(s.Hints, hint)
		return GuessResult{Outcome: GuessTooHigh, Guess: guess, Hint: hint, Remaining: s.MaxAttempts - len(s.Attempts)}
	}
}
