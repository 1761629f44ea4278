package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"etherpets/internal/adapter/repo/memory"
	"etherpets/internal/domain/pet"
)

func TestCleanupOrphans(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	events := memory.NewEventRepo(store)
	store.SeedPet(pet.New("kept", "Rex", "0xowner", pet.SpeciesDragon, "", "", now))
	store.SeedPet(pet.New("gone", "Bo", "0xowner", pet.SpeciesDragon, "", "", now))
	require.NoError(t, events.Append(context.Background(), []pet.GameEvent{
		{PetID: "kept", Type: pet.EventFeed, OccurredAt: now},
		{PetID: "gone", Type: pet.EventFeed, OccurredAt: now},
		{PetID: "gone", Type: pet.EventPlay, OccurredAt: now},
	}))
	store.DeletePet("gone")

	deleted, err := UseCase{Events: events}.CleanupOrphans(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	deleted, err = UseCase{Events: events}.CleanupOrphans(context.Background())
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
