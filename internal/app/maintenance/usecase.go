package maintenance

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"etherpets/internal/app/ports"
)

type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) CleanupOrphans(ctx context.Context) (int64, error) {
	deleted, err := u.Events.DeleteOrphaned(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete orphaned events: %w", err)
	}
	log.Info().Int64("deleted", deleted).Msg("orphaned events removed")
	return deleted, nil
}
