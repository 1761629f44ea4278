package gormrepo

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"etherpets/internal/app/ports"
	"etherpets/internal/domain/pet"
	"etherpets/internal/domain/quest"
	"etherpets/internal/domain/user"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func checkDockerAvailable() bool {
	return exec.Command("docker", "info").Run() == nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() || !checkDockerAvailable() {
		t.Skip("Docker is not available, skipping integration test")
	}

	ctx := context.Background()
	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("etherpets"),
		postgres.WithUsername("etherpets"),
		postgres.WithPassword("etherpets"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := OpenPostgres(dsn)
	require.NoError(t, err)

	migrations, err := Migrations("")
	require.NoError(t, err)
	applied, err := ApplyMigrations(ctx, db, migrations)
	require.NoError(t, err)
	require.Equal(t, 1, applied)

	again, err := ApplyMigrations(ctx, db, migrations)
	require.NoError(t, err)
	require.Zero(t, again, "migrations must be recorded")
	return db
}

func TestRepositoriesAgainstPostgres(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	t.Run("pets", func(t *testing.T) {
		repo := NewPetRepo(db)
		p := pet.New("pet-1", "Rex", "0xowner", pet.SpeciesDragon, "azure", "solid", testNow.Add(-30*time.Hour))
		require.NoError(t, repo.Create(ctx, p))
		require.ErrorIs(t, repo.Create(ctx, p), ports.ErrConflict)

		p.Hunger = 12
		p.HiddenTraits.Curiosity = 77
		p.TokenID = "0xtoken"
		require.NoError(t, repo.Save(ctx, p))

		got, err := repo.GetByID(ctx, "pet-1")
		require.NoError(t, err)
		assert.Equal(t, 12, got.Hunger)
		assert.Equal(t, 77, got.HiddenTraits.Curiosity)
		assert.Equal(t, "0xtoken", got.TokenID)

		stale, err := repo.ListNeedingDecay(ctx, testNow.Add(-24*time.Hour))
		require.NoError(t, err)
		require.Len(t, stale, 1)

		_, err = repo.GetByID(ctx, "missing")
		assert.True(t, errors.Is(err, ports.ErrNotFound))
		assert.ErrorIs(t, repo.Save(ctx, pet.Pet{ID: "missing", Level: 1}), ports.ErrNotFound)
	})

	t.Run("users", func(t *testing.T) {
		repo := NewUserRepo(db)
		u := user.New("0xowner", "alice", 100, testNow)
		require.NoError(t, repo.Create(ctx, u))

		claimedAt := testNow
		u.Achievements = []string{"first_pet"}
		u.Inventory["squeaky_toy"] = 2
		u.QuestProgress["daily_feed"] = quest.Progress{Current: 3, Completed: true, Claimed: true, ClaimedAt: &claimedAt, WindowStart: testNow.Truncate(24 * time.Hour)}
		u.LastDailyReward = testNow
		require.NoError(t, repo.Save(ctx, u))

		got, err := repo.GetByWallet(ctx, "0xowner")
		require.NoError(t, err)
		assert.Equal(t, []string{"first_pet"}, got.Achievements)
		assert.Equal(t, 2, got.Inventory["squeaky_toy"])
		assert.True(t, got.QuestProgress["daily_feed"].Claimed)
		assert.True(t, got.LastDailyReward.Equal(testNow))
		assert.True(t, got.LastLogin.IsZero())
	})

	t.Run("events", func(t *testing.T) {
		repo := NewEventRepo(db)
		require.NoError(t, repo.Append(ctx, []pet.GameEvent{
			{PetID: "pet-1", Type: pet.EventFeed, HiddenTraitsChange: pet.HiddenTraits{Trust: 1}, OccurredAt: testNow.Add(-time.Hour)},
			{PetID: "pet-1", Type: pet.EventPlay, OccurredAt: testNow},
			{PetID: "ghost", Type: pet.EventFeed, OccurredAt: testNow},
		}))

		latest, err := repo.ListByPet(ctx, "pet-1", 1)
		require.NoError(t, err)
		require.Len(t, latest, 1)
		assert.Equal(t, pet.EventPlay, latest[0].Type)

		n, err := repo.Count(ctx, ports.EventQuery{PetIDs: []string{"pet-1", "ghost"}, Type: pet.EventFeed})
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		deleted, err := repo.DeleteOrphaned(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, deleted)
	})

	t.Run("tx rollback", func(t *testing.T) {
		tx := NewTxManager(db)
		pets := NewPetRepo(db)
		boom := errors.New("boom")
		err := tx.RunInTx(ctx, func(txCtx context.Context) error {
			if err := pets.Create(txCtx, pet.New("pet-tx", "Tx", "0xowner", pet.SpeciesSpirit, "", "", testNow)); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)
		_, err = pets.GetByID(ctx, "pet-tx")
		assert.ErrorIs(t, err, ports.ErrNotFound)
	})

	t.Run("nested tx joins outer", func(t *testing.T) {
		tx := NewTxManager(db)
		pets := NewPetRepo(db)
		boom := errors.New("boom")
		err := tx.RunInTx(ctx, func(outer context.Context) error {
			if err := tx.RunInTx(outer, func(inner context.Context) error {
				return pets.Create(inner, pet.New("pet-nested", "Nested", "0xowner", pet.SpeciesSpirit, "", "", testNow))
			}); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)
		_, err = pets.GetByID(ctx, "pet-nested")
		assert.ErrorIs(t, err, ports.ErrNotFound)
	})
}
