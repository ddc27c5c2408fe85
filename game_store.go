package main

import (
	"sync"

	"komibot/internal/model"
)

// Session is one active game keyed by (chat, user, kind).
type Session interface {
	Kind() model.GameKind
}

// GameStore owns all active game sessions. Handlers must re-fetch by key on
// every event instead of holding a session across calls. The internal mutex
// makes the single-writer assumption explicit: platform retries that deliver
// the same update twice cannot race the map.
type GameStore struct {
	mu       sync.Mutex
	sessions map[model.SessionKey]Session
}

func NewGameStore() *GameStore {
	return &GameStore{
		sessions: make(map[model.SessionKey]Session),
	}
}

// Put installs a session, silently replacing any active one under the key.
func (s *GameStore) Put(key model.SessionKey, session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = session
}

func (s *GameStore) Get(key model.SessionKey) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[key]
	return session, ok
}

func (s *GameStore) Delete(key model.SessionKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
}

// DeleteAllFor removes every session a user has in a chat, any kind.
// Returns how many were removed.
func (s *GameStore) DeleteAllFor(chatID, userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key := range s.sessions {
		if key.ChatID == chatID && key.UserID == userID {
			delete(s.sessions, key)
			removed++
		}
	}
	return removed
}

func (s *GameStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Guess fetches the active guess session for a chat/user pair.
func (s *GameStore) Guess(chatID, userID int64) (*GuessSession, bool) {
	session, ok := s.Get(model.SessionKey{ChatID: chatID, UserID: userID, Kind: model.KindGuess})
	if !ok {
		return nil, false
	}
	g, ok := session.(*GuessSession)
	return g, ok
}

// TTT fetches the active tic-tac-toe session for a chat/user pair.
func (s *GameStore) TTT(chatID, userID int64) (*TTTSession, bool) {
	session, ok := s.Get(model.SessionKey{ChatID: chatID, UserID: userID, Kind: model.KindTTT})
	if !ok {
		return nil, false
	}
	t, ok := session.(*TTTSession)
	return t, ok
}
