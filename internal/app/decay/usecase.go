package decay

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"etherpets/internal/app/ports"
	"etherpets/internal/domain/pet"
)

type Report struct {
	Scanned int `json:"scanned"`
	Updated int `json:"updated"`
	Alerts  int `json:"alerts"`
	Failed  int `json:"failed"`
}

type UseCase struct {
	TxManager ports.TxManager
	Pets      ports.PetRepository
	Events    ports.EventRepository
	Metrics   ports.SweepMetrics
	Notifier  ports.Notifier
	Now       func() time.Time
}

// Sweep decays every stale pet in turn. A failure on one pet is counted and
// logged and the sweep moves on.
func (u UseCase) Sweep(ctx context.Context) (Report, error) {
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn()

	stale, err := u.Pets.ListNeedingDecay(ctx, now.Add(-pet.DecayStaleAfter))
	if err != nil {
		return Report{}, fmt.Errorf("list stale pets: %w", err)
	}

	var report Report
	defer func() { u.finish(report) }()

	for _, p := range stale {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Int("remaining", len(stale)-report.Scanned).Msg("decay sweep interrupted")
			return report, err
		}
		report.Scanned++
		updated, alert, err := u.decayOne(ctx, p, now)
		if err != nil {
			report.Failed++
			log.Error().Err(err).Str("pet_id", p.ID).Msg("pet decay failed")
			continue
		}
		if updated {
			report.Updated++
		}
		if alert {
			report.Alerts++
		}
	}
	return report, nil
}

func (u UseCase) finish(report Report) {
	if u.Metrics != nil {
		u.Metrics.RecordSweep(report.Scanned, report.Updated, report.Alerts, report.Failed)
	}
	log.Info().
		Int("scanned", report.Scanned).
		Int("updated", report.Updated).
		Int("alerts", report.Alerts).
		Int("failed", report.Failed).
		Msg("decay sweep finished")
}

func (u UseCase) decayOne(ctx context.Context, p pet.Pet, now time.Time) (updated, alert bool, err error) {
	if pet.ComputeDecay(p, now).IsZero() {
		return false, false, nil
	}
	next := pet.ApplyDecay(p, now)
	next.UpdatedAt = now
	alert = pet.NeedsAttention(next)

	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := u.Pets.Save(txCtx, next); err != nil {
			return err
		}
		if alert {
			return u.Events.Append(txCtx, []pet.GameEvent{pet.DecayEvent(p, next, now)})
		}
		return nil
	})
	if err != nil {
		return false, false, err
	}

	if alert && u.Notifier != nil {
		nerr := u.Notifier.Notify(ctx, ports.Notification{
			Kind:    ports.NotifyAttention,
			Owner:   next.Owner,
			PetID:   next.ID,
			Title:   "Your pet needs attention",
			Message: fmt.Sprintf("%s is feeling %s", next.Name, next.Mood),
		})
		if nerr != nil {
			log.Warn().Err(nerr).Str("pet_id", next.ID).Msg("attention notification failed")
		}
	}
	return true, alert, nil
}
