package care

import (
	"context"
	"errors"
	"fmt"
	"time"

	"etherpets/internal/app/ports"
	"etherpets/internal/domain/pet"
)

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubPetRepo struct {
	byID    map[string]pet.Pet
	saveErr error
}

func (r *stubPetRepo) Create(_ context.Context, p pet.Pet) error {
	r.byID[p.ID] = p
	return nil
}

func (r *stubPetRepo) GetByID(_ context.Context, id string) (pet.Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return pet.Pet{}, ports.ErrNotFound
	}
	return p, nil
}

func (r *stubPetRepo) ListByOwner(_ context.Context, owner string) ([]pet.Pet, error) {
	var out []pet.Pet
	for _, p := range r.byID {
		if p.Owner == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPetRepo) ListNeedingDecay(_ context.Context, _ time.Time) ([]pet.Pet, error) {
	return nil, nil
}

func (r *stubPetRepo) Save(_ context.Context, p pet.Pet) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.byID[p.ID] = p
	return nil
}

type stubEventRepo struct {
	events []pet.GameEvent
}

func (r *stubEventRepo) Append(_ context.Context, events []pet.GameEvent) error {
	for i := range events {
		if events[i].ID == "" {
			events[i].ID = fmt.Sprintf("evt-%d", len(r.events)+1)
		}
		r.events = append(r.events, events[i])
	}
	return nil
}

func (r *stubEventRepo) ListByPet(_ context.Context, _ string, _ int) ([]pet.GameEvent, error) {
	return r.events, nil
}

func (r *stubEventRepo) List(_ context.Context, _ ports.EventQuery) ([]pet.GameEvent, error) {
	return r.events, nil
}

func (r *stubEventRepo) Count(_ context.Context, _ ports.EventQuery) (int, error) {
	return len(r.events), nil
}

func (r *stubEventRepo) DeleteOrphaned(_ context.Context) (int64, error) {
	return 0, nil
}

type stubMetrics struct {
	success []pet.ActionType
	failure []pet.ActionType
}

func (m *stubMetrics) RecordSuccess(action pet.ActionType) { m.success = append(m.success, action) }
func (m *stubMetrics) RecordFailure(action pet.ActionType) { m.failure = append(m.failure, action) }

type stubNotifier struct {
	sent []ports.Notification
	err  error
}

func (n *stubNotifier) Notify(_ context.Context, msg ports.Notification) error {
	n.sent = append(n.sent, msg)
	return n.err
}

var errBoom = errors.New("boom")
