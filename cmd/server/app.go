package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"etherpets/internal/adapter/chain"
	httpadapter "etherpets/internal/adapter/http"
	metricsinmem "etherpets/internal/adapter/metrics/inmemory"
	"etherpets/internal/adapter/notify"
	gormrepo "etherpets/internal/adapter/repo/gorm"
	"etherpets/internal/adapter/repo/memory"
	"etherpets/internal/app/account"
	"etherpets/internal/app/care"
	chatuc "etherpets/internal/app/chat"
	"etherpets/internal/app/decay"
	"etherpets/internal/app/maintenance"
	"etherpets/internal/app/pets"
	"etherpets/internal/app/ports"
	"etherpets/internal/app/progress"
	"etherpets/internal/config"
	"etherpets/internal/domain/chat"
	"etherpets/internal/domain/quest"
)

type stores struct {
	tx     ports.TxManager
	pets   ports.PetRepository
	users  ports.UserRepository
	events ports.EventRepository
	closer func() error
}

type application struct {
	Account     account.UseCase
	Pets        pets.UseCase
	Care        care.UseCase
	Chat        chatuc.UseCase
	Progress    progress.UseCase
	Decay       decay.UseCase
	Maintenance maintenance.UseCase
	KPI         *metricsinmem.Recorder
	closer      func() error
}

func buildApp(ctx context.Context, cfg *config.Config) (*application, error) {
	st, err := buildStores(ctx, cfg)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Quests.Location()
	if err != nil {
		return nil, err
	}

	var minter ports.Minter
	if cfg.Chain.Enabled {
		m, err := chain.NewStubMinter(cfg.Chain.Contract)
		if err != nil {
			return nil, err
		}
		minter = m
	}

	notifier := notify.NewLogNotifier(log.Logger)
	kpi := metricsinmem.NewRecorder()

	return &application{
		Account: account.UseCase{
			TxManager: st.tx,
			Users:     st.users,
			Pets:      st.pets,
			Events:    st.events,
			Settings: account.Settings{
				StartingCoins: cfg.Users.StartingCoins,
				DailyReward:   cfg.Daily.Reward,
				DailyCooldown: cfg.Daily.Cooldown(),
				Location:      loc,
			},
		},
		Pets: pets.UseCase{
			Pets:   st.pets,
			Events: st.events,
			Minter: minter,
			NewID:  uuid.NewString,
		},
		Care: care.UseCase{
			TxManager: st.tx,
			Pets:      st.pets,
			Events:    st.events,
			Metrics:   kpi,
			Notifier:  notifier,
		},
		Chat: chatuc.UseCase{
			TxManager: st.tx,
			Pets:      st.pets,
			Events:    st.events,
			Generator: chat.Generator{},
		},
		Progress: progress.UseCase{
			TxManager:       st.tx,
			Users:           st.users,
			Pets:            st.pets,
			Events:          st.events,
			Notifier:        notifier,
			Catalog:         quest.DefaultCatalog(),
			Location:        loc,
			GrantQuestCoins: cfg.Quests.GrantCoins,
		},
		Decay: decay.UseCase{
			TxManager: st.tx,
			Pets:      st.pets,
			Events:    st.events,
			Metrics:   kpi,
			Notifier:  notifier,
		},
		Maintenance: maintenance.UseCase{Events: st.events},
		KPI:         kpi,
		closer:      st.closer,
	}, nil
}

func (a *application) Handler() httpadapter.Handler {
	return httpadapter.Handler{
		AccountUC:     a.Account,
		PetsUC:        a.Pets,
		CareUC:        a.Care,
		ChatUC:        a.Chat,
		ProgressUC:    a.Progress,
		DecayUC:       a.Decay,
		MaintenanceUC: a.Maintenance,
		KPI:           a.KPI,
	}
}

func (a *application) Close() {
	if a.closer == nil {
		return
	}
	if err := a.closer(); err != nil {
		log.Warn().Err(err).Msg("close store")
	}
}

func buildStores(ctx context.Context, cfg *config.Config) (stores, error) {
	switch cfg.Database.Driver {
	case "memory":
		s := memory.NewStore()
		log.Warn().Msg("using in-memory store; state is lost on exit")
		return stores{
			tx:     memory.NewTxManager(s),
			pets:   memory.NewPetRepo(s),
			users:  memory.NewUserRepo(s),
			events: memory.NewEventRepo(s),
		}, nil
	case "postgres":
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return stores{}, err
		}
		var sqlDB *sql.DB
		if sqlDB, err = db.DB(); err != nil {
			return stores{}, fmt.Errorf("postgres handle: %w", err)
		}
		return stores{
			tx:     gormrepo.NewTxManager(db),
			pets:   gormrepo.NewPetRepo(db),
			users:  gormrepo.NewUserRepo(db),
			events: gormrepo.NewEventRepo(db),
			closer: sqlDB.Close,
		}, nil
	default:
		return stores{}, fmt.Errorf("unknown database.driver %q", cfg.Database.Driver)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	db, err := gormrepo.OpenPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	fsys, err := gormrepo.Migrations(cfg.Database.Migrations)
	if err != nil {
		return nil, err
	}
	applied, err := gormrepo.ApplyMigrations(ctx, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	log.Info().Int("applied", applied).Msg("migrations up to date")
	return db, nil
}
