package ports

import (
	"context"

	"etherpets/internal/domain/pet"
)

type NotificationKind string

const (
	NotifyLevelUp     NotificationKind = "level_up"
	NotifyAchievement NotificationKind = "achievement"
	NotifyAttention   NotificationKind = "attention"
)

type Notification struct {
	Kind    NotificationKind
	Owner   string
	PetID   string
	Title   string
	Message string
}

// Notifier delivery is fire-and-forget. Callers log errors and carry on.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

type Minter interface {
	Mint(ctx context.Context, p pet.Pet) (string, error)
}
