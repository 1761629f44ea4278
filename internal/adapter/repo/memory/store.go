package memory

import (
	"sync"

	"etherpets/internal/domain/pet"
	"etherpets/internal/domain/user"
)

// Store backs all in-memory repositories. mu guards the maps; txMu serializes
// RunInTx callers and is never taken by the repositories themselves.
type Store struct {
	mu     sync.RWMutex
	txMu   sync.Mutex
	pets   map[string]pet.Pet
	users  map[string]user.User
	events []pet.GameEvent
}

func NewStore() *Store {
	return &Store{
		pets:  make(map[string]pet.Pet),
		users: make(map[string]user.User),
	}
}

func (s *Store) SeedPet(p pet.Pet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pets[p.ID] = p
}

func (s *Store) SeedUser(u user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.WalletAddress] = u.Clone()
}

func (s *Store) DeletePet(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pets, id)
}
