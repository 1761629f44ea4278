package care

import "etherpets/internal/domain/pet"

type Request struct {
	PetID   string
	Action  pet.ActionType
	Variant string
}

type Response struct {
	Pet       pet.Pet       `json:"pet"`
	Delta     pet.Delta     `json:"delta"`
	LeveledUp bool          `json:"leveledUp"`
	NewLevel  int           `json:"newLevel,omitempty"`
	Event     pet.GameEvent `json:"event"`
}
