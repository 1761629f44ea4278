package pets

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"etherpets/internal/app/ports"
	"etherpets/internal/domain/chat"
	"etherpets/internal/domain/pet"
	"etherpets/internal/domain/user"
)

const (
	MaxNameLength       = 32
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

var (
	ErrInvalidName    = errors.New("invalid pet name")
	ErrInvalidSpecies = errors.New("invalid species")
	ErrInvalidMood    = errors.New("invalid mood")
)

type UseCase struct {
	Pets   ports.PetRepository
	Events ports.EventRepository
	Minter ports.Minter
	Rand   chat.Picker
	NewID  func() string
	Now    func() time.Time
}

func (u UseCase) Create(ctx context.Context, req CreateRequest) (pet.Pet, error) {
	owner, err := user.NormalizeWallet(req.Owner)
	if err != nil {
		return pet.Pet{}, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return pet.Pet{}, ErrInvalidName
	}
	species, ok := pet.ParseSpecies(strings.ToLower(strings.TrimSpace(req.Species)))
	if !ok {
		return pet.Pet{}, ErrInvalidSpecies
	}

	newID := u.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	p := pet.New(newID(), name, owner, species, u.pick(pet.Colors), u.pick(pet.Patterns), u.now())
	if err := u.Pets.Create(ctx, p); err != nil {
		return pet.Pet{}, fmt.Errorf("create pet: %w", err)
	}

	return u.mint(ctx, p), nil
}

// mint never fails creation; errors only reach the log.
func (u UseCase) mint(ctx context.Context, p pet.Pet) pet.Pet {
	if u.Minter == nil {
		return p
	}
	tokenID, err := u.Minter.Mint(ctx, p)
	if err != nil {
		log.Warn().Err(err).Str("pet_id", p.ID).Str("owner", p.Owner).Msg("pet mint failed")
		return p
	}
	minted := p
	minted.TokenID = tokenID
	if err := u.Pets.Save(ctx, minted); err != nil {
		log.Warn().Err(err).Str("pet_id", p.ID).Msg("storing token id failed")
		return p
	}
	return minted
}

func (u UseCase) Get(ctx context.Context, id string) (View, error) {
	p, err := u.Pets.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return View{}, err
	}
	return View{
		Pet:         p,
		MoodMessage: chat.Generator{Rand: u.Rand}.MoodMessage(p),
		Evolution:   pet.PredictEvolution(p.HiddenTraits),
	}, nil
}

func (u UseCase) ListByOwner(ctx context.Context, owner string) ([]pet.Pet, error) {
	wallet, err := user.NormalizeWallet(owner)
	if err != nil {
		return nil, err
	}
	return u.Pets.ListByOwner(ctx, wallet)
}

// SetMood overrides the derived mood. The next action or decay reclassifies it.
func (u UseCase) SetMood(ctx context.Context, id, mood string) (pet.Pet, error) {
	m, ok := pet.ParseMood(strings.ToLower(strings.TrimSpace(mood)))
	if !ok {
		return pet.Pet{}, ErrInvalidMood
	}
	p, err := u.Pets.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return pet.Pet{}, err
	}
	p.Mood = m
	p.UpdatedAt = u.now()
	if err := u.Pets.Save(ctx, p); err != nil {
		return pet.Pet{}, err
	}
	return p, nil
}

func (u UseCase) History(ctx context.Context, id string, limit int) ([]pet.GameEvent, error) {
	id = strings.TrimSpace(id)
	if _, err := u.Pets.GetByID(ctx, id); err != nil {
		return nil, err
	}
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	return u.Events.ListByPet(ctx, id, limit)
}

func (u UseCase) pick(options []string) string {
	if u.Rand == nil {
		return options[rand.IntN(len(options))]
	}
	return options[u.Rand.IntN(len(options))]
}

func (u UseCase) now() time.Time {
	if u.Now == nil {
		return time.Now()
	}
	return u.Now()
}
