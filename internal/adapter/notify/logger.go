package notify

import (
	"context"

	"github.com/rs/zerolog"

	"etherpets/internal/app/ports"
)

// LogNotifier writes notifications to a zerolog logger. It stands in for a
// push channel and never fails.
type LogNotifier struct {
	Logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) LogNotifier {
	return LogNotifier{Logger: logger.With().Str("component", "notify").Logger()}
}

func (n LogNotifier) Notify(_ context.Context, msg ports.Notification) error {
	n.Logger.Info().
		Str("kind", string(msg.Kind)).
		Str("owner", msg.Owner).
		Str("pet_id", msg.PetID).
		Str("title", msg.Title).
		Msg(msg.Message)
	return nil
}
