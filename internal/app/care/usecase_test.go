package care

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"etherpets/internal/app/ports"
	"etherpets/internal/domain/pet"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newUseCase(p pet.Pet) (UseCase, *stubPetRepo, *stubEventRepo, *stubMetrics, *stubNotifier) {
	pets := &stubPetRepo{byID: map[string]pet.Pet{p.ID: p}}
	events := &stubEventRepo{}
	metrics := &stubMetrics{}
	notifier := &stubNotifier{}
	uc := UseCase{
		TxManager: stubTxManager{},
		Pets:      pets,
		Events:    events,
		Metrics:   metrics,
		Notifier:  notifier,
		Now:       func() time.Time { return testNow },
	}
	return uc, pets, events, metrics, notifier
}

func TestExecuteFeedPersistsPetAndEvent(t *testing.T) {
	p := pet.New("pet-1", "Rex", "0xowner", pet.SpeciesDragon, "azure", "solid", testNow.Add(-time.Hour))
	p.Hunger = 40
	uc, pets, events, metrics, _ := newUseCase(p)

	resp, err := uc.Execute(context.Background(), Request{PetID: "pet-1", Action: pet.ActionFeed, Variant: "premium"})
	require.NoError(t, err)

	assert.Equal(t, 80, resp.Pet.Hunger)
	assert.Equal(t, 80, pets.byID["pet-1"].Hunger)
	assert.Equal(t, testNow, pets.byID["pet-1"].LastFed)
	require.Len(t, events.events, 1)
	assert.Equal(t, pet.EventFeed, events.events[0].Type)
	assert.Equal(t, "evt-1", resp.Event.ID)
	assert.Equal(t, "Rex enjoyed a premium meal", events.events[0].Description)
	assert.Equal(t, []pet.ActionType{pet.ActionFeed}, metrics.success)
}

func TestExecuteMissingPet(t *testing.T) {
	uc, _, events, metrics, _ := newUseCase(pet.Pet{ID: "other"})

	_, err := uc.Execute(context.Background(), Request{PetID: "missing", Action: pet.ActionPlay})
	require.ErrorIs(t, err, ports.ErrNotFound)
	assert.Empty(t, events.events)
	assert.Equal(t, []pet.ActionType{pet.ActionPlay}, metrics.failure)
}

func TestExecuteRejectsUnknownAction(t *testing.T) {
	uc, _, _, _, _ := newUseCase(pet.Pet{ID: "pet-1"})
	_, err := uc.Execute(context.Background(), Request{PetID: "pet-1", Action: "dance"})
	require.ErrorIs(t, err, pet.ErrUnknownAction)

	_, err = uc.Execute(context.Background(), Request{PetID: "  ", Action: pet.ActionFeed})
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestExecuteSaveFailureSkipsEvent(t *testing.T) {
	p := pet.New("pet-1", "Rex", "0xowner", pet.SpeciesDragon, "", "", testNow)
	uc, pets, events, _, _ := newUseCase(p)
	pets.saveErr = errBoom

	_, err := uc.Execute(context.Background(), Request{PetID: "pet-1", Action: pet.ActionTrain})
	require.ErrorIs(t, err, errBoom)
	assert.Empty(t, events.events)
}

func TestLevelUpNotifiesBestEffort(t *testing.T) {
	p := pet.New("pet-1", "Rex", "0xowner", pet.SpeciesDragon, "", "", testNow)
	p.Experience = 90
	uc, _, _, _, notifier := newUseCase(p)
	notifier.err = errBoom

	resp, err := uc.Execute(context.Background(), Request{PetID: "pet-1", Action: pet.ActionTrain, Variant: "intelligence"})
	require.NoError(t, err, "notification failure must not fail the action")
	assert.True(t, resp.LeveledUp)
	assert.Equal(t, 2, resp.NewLevel)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, ports.NotifyLevelUp, notifier.sent[0].Kind)
	assert.Equal(t, "0xowner", notifier.sent[0].Owner)
}
