package care

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"etherpets/internal/app/ports"
	"etherpets/internal/domain/pet"
)

var ErrInvalidRequest = errors.New("invalid care request")

type UseCase struct {
	TxManager ports.TxManager
	Pets      ports.PetRepository
	Events    ports.EventRepository
	Metrics   ports.ActionMetrics
	Notifier  ports.Notifier
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.PetID = strings.TrimSpace(req.PetID)
	if req.PetID == "" {
		return Response{}, ErrInvalidRequest
	}
	if _, ok := pet.ParseAction(string(req.Action)); !ok {
		return Response{}, pet.ErrUnknownAction
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := u.Pets.GetByID(txCtx, req.PetID)
		if err != nil {
			return err
		}
		result, err := pet.ApplyAction(current, req.Action, req.Variant, nowFn())
		if err != nil {
			return err
		}
		if err := u.Pets.Save(txCtx, result.Pet); err != nil {
			return fmt.Errorf("save pet: %w", err)
		}
		events := []pet.GameEvent{result.Event}
		if err := u.Events.Append(txCtx, events); err != nil {
			return fmt.Errorf("append event: %w", err)
		}
		result.Event = events[0]
		out = Response{
			Pet:       result.Pet,
			Delta:     result.Delta,
			LeveledUp: result.LeveledUp,
			NewLevel:  result.NewLevel,
			Event:     result.Event,
		}
		return nil
	})
	if err != nil {
		if u.Metrics != nil {
			u.Metrics.RecordFailure(req.Action)
		}
		return Response{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordSuccess(req.Action)
	}

	if out.LeveledUp {
		u.notifyLevelUp(ctx, out.Pet)
	}
	return out, nil
}

func (u UseCase) notifyLevelUp(ctx context.Context, p pet.Pet) {
	if u.Notifier == nil {
		return
	}
	err := u.Notifier.Notify(ctx, ports.Notification{
		Kind:    ports.NotifyLevelUp,
		Owner:   p.Owner,
		PetID:   p.ID,
		Title:   "Level up!",
		Message: fmt.Sprintf("%s reached level %d", p.Name, p.Level),
	})
	if err != nil {
		log.Warn().Err(err).Str("pet_id", p.ID).Msg("level-up notification failed")
	}
}
