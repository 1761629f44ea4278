package memory

import (
	"context"
	"sort"
	"time"

	"etherpets/internal/app/ports"
	"etherpets/internal/domain/pet"
)

type PetRepo struct {
	store *Store
}

func NewPetRepo(store *Store) PetRepo {
	return PetRepo{store: store}
}

func (r PetRepo) Create(_ context.Context, p pet.Pet) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.pets[p.ID]; exists {
		return ports.ErrConflict
	}
	r.store.pets[p.ID] = p
	return nil
}

func (r PetRepo) GetByID(_ context.Context, id string) (pet.Pet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.pets[id]
	if !ok {
		return pet.Pet{}, ports.ErrNotFound
	}
	return p, nil
}

func (r PetRepo) ListByOwner(_ context.Context, owner string) ([]pet.Pet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]pet.Pet, 0)
	for _, p := range r.store.pets {
		if p.Owner == owner {
			out = append(out, p)
		}
	}
	sortPets(out)
	return out, nil
}

func (r PetRepo) ListNeedingDecay(_ context.Context, cutoff time.Time) ([]pet.Pet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]pet.Pet, 0)
	for _, p := range r.store.pets {
		if p.LastFed.Before(cutoff) || p.LastPlayed.Before(cutoff) {
			out = append(out, p)
		}
	}
	sortPets(out)
	return out, nil
}

// Save overwrites the stored pet; the last writer wins.
func (r PetRepo) Save(_ context.Context, p pet.Pet) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.pets[p.ID]; !ok {
		return ports.ErrNotFound
	}
	r.store.pets[p.ID] = p
	return nil
}

// sortPets orders by birth date, then id, so "first pet" is stable.
func sortPets(pets []pet.Pet) {
	sort.Slice(pets, func(i, j int) bool {
		if !pets[i].BirthDate.Equal(pets[j].BirthDate) {
			return pets[i].BirthDate.Before(pets[j].BirthDate)
		}
		return pets[i].ID < pets[j].ID
	})
}
