package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"etherpets/internal/app/ports"
	"etherpets/internal/domain/pet"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, events []pet.GameEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range events {
		if events[i].ID == "" {
			events[i].ID = uuid.NewString()
		}
		r.store.events = append(r.store.events, events[i])
	}
	return nil
}

// ListByPet returns the newest events first. limit <= 0 means all.
func (r EventRepo) ListByPet(ctx context.Context, petID string, limit int) ([]pet.GameEvent, error) {
	out, err := r.List(ctx, ports.EventQuery{PetIDs: []string{petID}})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r EventRepo) List(_ context.Context, q ports.EventQuery) ([]pet.GameEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]pet.GameEvent, 0)
	for _, e := range r.store.events {
		if matches(e, q) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r EventRepo) Count(ctx context.Context, q ports.EventQuery) (int, error) {
	events, err := r.List(ctx, q)
	if err != nil {
		return 0, err
	}
	return len(events), nil
}

func (r EventRepo) DeleteOrphaned(_ context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.events[:0]
	var deleted int64
	for _, e := range r.store.events {
		if _, ok := r.store.pets[e.PetID]; ok {
			kept = append(kept, e)
			continue
		}
		deleted++
	}
	r.store.events = kept
	return deleted, nil
}

func matches(e pet.GameEvent, q ports.EventQuery) bool {
	if q.PetIDs != nil && !containsID(q.PetIDs, e.PetID) {
		return false
	}
	if q.Type != "" && e.Type != q.Type {
		return false
	}
	if !q.From.IsZero() && e.OccurredAt.Before(q.From) {
		return false
	}
	if !q.To.IsZero() && !e.OccurredAt.Before(q.To) {
		return false
	}
	return true
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
