package ports

import (
	"context"
	"time"

	"etherpets/internal/domain/pet"
	"etherpets/internal/domain/user"
)

type PetRepository interface {
	Create(ctx context.Context, p pet.Pet) error
	GetByID(ctx context.Context, id string) (pet.Pet, error)
	ListByOwner(ctx context.Context, owner string) ([]pet.Pet, error)
	// ListNeedingDecay returns pets whose lastFed or lastPlayed is before cutoff.
	ListNeedingDecay(ctx context.Context, cutoff time.Time) ([]pet.Pet, error)
	Save(ctx context.Context, p pet.Pet) error
}

type UserRepository interface {
	GetByWallet(ctx context.Context, wallet string) (user.User, error)
	Create(ctx context.Context, u user.User) error
	Save(ctx context.Context, u user.User) error
}

// EventQuery narrows an event listing. Zero fields are unbounded; a non-nil
// empty PetIDs matches nothing.
type EventQuery struct {
	PetIDs []string
	Type   pet.EventType
	From   time.Time
	To     time.Time
}

type EventRepository interface {
	// Append assigns ids in place to events that have none.
	Append(ctx context.Context, events []pet.GameEvent) error
	ListByPet(ctx context.Context, petID string, limit int) ([]pet.GameEvent, error)
	List(ctx context.Context, q EventQuery) ([]pet.GameEvent, error)
	Count(ctx context.Context, q EventQuery) (int, error)
	DeleteOrphaned(ctx context.Context) (int64, error)
}
