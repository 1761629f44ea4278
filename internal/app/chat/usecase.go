package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"etherpets/internal/app/ports"
	"etherpets/internal/domain/chat"
	"etherpets/internal/domain/pet"
)

const MaxMessageLength = 500

var ErrInvalidMessage = errors.New("invalid chat message")

type Request struct {
	PetID   string
	Message string
}

type Response struct {
	Reply string  `json:"reply"`
	Pet   pet.Pet `json:"pet"`
}

type UseCase struct {
	TxManager ports.TxManager
	Pets      ports.PetRepository
	Events    ports.EventRepository
	Generator chat.Generator
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	msg := strings.TrimSpace(req.Message)
	if msg == "" || utf8.RuneCountInString(msg) > MaxMessageLength {
		return Response{}, ErrInvalidMessage
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		p, err := u.Pets.GetByID(txCtx, strings.TrimSpace(req.PetID))
		if err != nil {
			return err
		}
		now := nowFn()
		reply := u.Generator.Respond(msg, p)

		before := p.HiddenTraits.Empathy
		if reply.NewMood != "" {
			p.Mood = reply.NewMood
		}
		p.HiddenTraits.Empathy = pet.Clamp(p.HiddenTraits.Empathy + 1)
		p.UpdatedAt = now
		if err := u.Pets.Save(txCtx, p); err != nil {
			return fmt.Errorf("save pet: %w", err)
		}
		event := pet.GameEvent{
			PetID:              p.ID,
			Type:               pet.EventSocial,
			Description:        fmt.Sprintf("Chatted with %s", p.Name),
			HiddenTraitsChange: pet.HiddenTraits{Empathy: p.HiddenTraits.Empathy - before},
			OccurredAt:         now,
		}
		if err := u.Events.Append(txCtx, []pet.GameEvent{event}); err != nil {
			return fmt.Errorf("append event: %w", err)
		}
		out = Response{Reply: reply.Text, Pet: p}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}
