package history

import (
	"ShelfGuardian/entity"
	"sync"
)

// Store keeps chat turns per user in process memory. Contents are lost on
// restart.
type Store struct {
	mu    sync.Mutex
	turns map[int64][]entity.ChatTurn
	limit int
}

// New returns a store that keeps at most limit turns per user; limit <= 0
// disables the cap.
func New(limit int) *Store {
	return &Store{
		turns: make(map[int64][]entity.ChatTurn),
		limit: limit,
	}
}

func (s *Store) Add(userID int64, turn entity.ChatTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := append(s.turns[userID], turn)
	if s.limit > 0 && len(turns) > s.limit {
		turns = append([]entity.ChatTurn(nil), turns[len(turns)-s.limit:]...)
	}
	s.turns[userID] = turns
}

// Get returns a copy of the user's turns, oldest first.
func (s *Store) Get(userID int64) []entity.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := s.turns[userID]
	result := make([]entity.ChatTurn, len(turns))
	copy(result, turns)
	return result
}

func (s *Store) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.turns, userID)
}
