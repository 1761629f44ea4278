package decay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"etherpets/internal/adapter/repo/memory"
	"etherpets/internal/app/ports"
	"etherpets/internal/domain/pet"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type failingPetRepo struct {
	ports.PetRepository
	failID string
}

func (r failingPetRepo) Save(ctx context.Context, p pet.Pet) error {
	if p.ID == r.failID {
		return errors.New("disk full")
	}
	return r.PetRepository.Save(ctx, p)
}

type sweepRecorder struct {
	calls [][4]int
}

func (s *sweepRecorder) RecordSweep(scanned, updated, alerts, failed int) {
	s.calls = append(s.calls, [4]int{scanned, updated, alerts, failed})
}

func setup(t *testing.T) (UseCase, *memory.Store, *sweepRecorder) {
	t.Helper()
	store := memory.NewStore()
	rec := &sweepRecorder{}
	return UseCase{
		TxManager: memory.NewTxManager(store),
		Pets:      memory.NewPetRepo(store),
		Events:    memory.NewEventRepo(store),
		Metrics:   rec,
		Now:       func() time.Time { return testNow },
	}, store, rec
}

func TestSweepDecaysStalePets(t *testing.T) {
	uc, store, rec := setup(t)
	store.SeedPet(pet.New("stale", "Rex", "0xowner", pet.SpeciesDragon, "", "", testNow.Add(-25*time.Hour)))
	store.SeedPet(pet.New("fresh", "Bo", "0xowner", pet.SpeciesDragon, "", "", testNow.Add(-time.Hour)))

	report, err := uc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Report{Scanned: 1, Updated: 1, Alerts: 0, Failed: 0}, report)

	p, err := uc.Pets.GetByID(context.Background(), "stale")
	require.NoError(t, err)
	assert.Equal(t, 50, p.Hunger)
	assert.Equal(t, 25, p.Energy)
	assert.Equal(t, 63, p.Happiness)

	fresh, _ := uc.Pets.GetByID(context.Background(), "fresh")
	assert.Equal(t, 100, fresh.Hunger)
	assert.Equal(t, [][4]int{{1, 1, 0, 0}}, rec.calls)
}

func TestSweepEmitsDecayEventWhenAttentionNeeded(t *testing.T) {
	uc, store, _ := setup(t)
	store.SeedPet(pet.New("neglected", "Rex", "0xowner", pet.SpeciesDragon, "", "", testNow.Add(-40*time.Hour)))

	report, err := uc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Alerts)

	events, err := uc.Events.ListByPet(context.Background(), "neglected", 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, pet.EventDecay, events[0].Type)
	assert.Equal(t, -80, events[0].HungerChange)
}

func TestSweepIsolatesFailures(t *testing.T) {
	uc, store, _ := setup(t)
	uc.Pets = failingPetRepo{PetRepository: uc.Pets, failID: "a"}
	store.SeedPet(pet.New("a", "Ace", "0xowner", pet.SpeciesDragon, "", "", testNow.Add(-30*time.Hour)))
	store.SeedPet(pet.New("b", "Bo", "0xowner", pet.SpeciesDragon, "", "", testNow.Add(-30*time.Hour)))

	report, err := uc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Updated)
}

func TestRepeatedSweepKeepsPenalizingHunger(t *testing.T) {
	uc, store, _ := setup(t)
	store.SeedPet(pet.New("stale", "Rex", "0xowner", pet.SpeciesDragon, "", "", testNow.Add(-25*time.Hour)))

	_, err := uc.Sweep(context.Background())
	require.NoError(t, err)
	_, err = uc.Sweep(context.Background())
	require.NoError(t, err)

	p, _ := uc.Pets.GetByID(context.Background(), "stale")
	assert.Equal(t, 0, p.Hunger)
}

func TestCancelledSweepStillRecordsMetrics(t *testing.T) {
	uc, store, rec := setup(t)
	store.SeedPet(pet.New("pet-1", "Rex", "0xowner", pet.SpeciesDragon, "", "", testNow.Add(-30*time.Hour)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := uc.Sweep(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, report.Scanned)
	require.Len(t, rec.calls, 1)
	assert.Equal(t, [4]int{0, 0, 0, 0}, rec.calls[0])
}
