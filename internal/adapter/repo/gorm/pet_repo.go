package gormrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"etherpets/internal/adapter/repo/gorm/model"
	"etherpets/internal/app/ports"
	"etherpets/internal/domain/pet"
)

type PetRepo struct {
	db *gorm.DB
}

func NewPetRepo(db *gorm.DB) PetRepo {
	return PetRepo{db: db}
}

func (r PetRepo) Create(ctx context.Context, p pet.Pet) error {
	m := toPetModel(p)
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r PetRepo) GetByID(ctx context.Context, id string) (pet.Pet, error) {
	var m model.Pet
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pet.Pet{}, ports.ErrNotFound
		}
		return pet.Pet{}, err
	}
	return toPetDomain(m), nil
}

func (r PetRepo) ListByOwner(ctx context.Context, owner string) ([]pet.Pet, error) {
	var rows []model.Pet
	err := getDBFromCtx(ctx, r.db).
		Where("owner = ?", owner).
		Order("birth_date ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toPetDomains(rows), nil
}

func (r PetRepo) ListNeedingDecay(ctx context.Context, cutoff time.Time) ([]pet.Pet, error) {
	var rows []model.Pet
	err := getDBFromCtx(ctx, r.db).
		Where("last_fed < ? OR last_played < ?", cutoff, cutoff).
		Order("birth_date ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toPetDomains(rows), nil
}

// Save overwrites every mutable column. There is no version check.
func (r PetRepo) Save(ctx context.Context, p pet.Pet) error {
	m := toPetModel(p)
	res := getDBFromCtx(ctx, r.db).
		Model(&model.Pet{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"name":        m.Name,
			"token_id":    m.TokenID,
			"color":       m.Color,
			"pattern":     m.Pattern,
			"energy":      m.Energy,
			"hunger":      m.Hunger,
			"happiness":   m.Happiness,
			"level":       m.Level,
			"experience":  m.Experience,
			"trust":       m.Trust,
			"empathy":     m.Empathy,
			"curiosity":   m.Curiosity,
			"mood":        m.Mood,
			"last_fed":    m.LastFed,
			"last_played": m.LastPlayed,
			"updated_at":  m.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func toPetModel(p pet.Pet) model.Pet {
	return model.Pet{
		ID:         p.ID,
		Name:       p.Name,
		Owner:      p.Owner,
		TokenID:    p.TokenID,
		Species:    string(p.Species),
		Color:      p.Color,
		Pattern:    p.Pattern,
		Energy:     int32(p.Energy),
		Hunger:     int32(p.Hunger),
		Happiness:  int32(p.Happiness),
		Level:      int32(p.Level),
		Experience: int32(p.Experience),
		Trust:      int32(p.HiddenTraits.Trust),
		Empathy:    int32(p.HiddenTraits.Empathy),
		Curiosity:  int32(p.HiddenTraits.Curiosity),
		Mood:       string(p.Mood),
		LastFed:    p.LastFed,
		LastPlayed: p.LastPlayed,
		BirthDate:  p.BirthDate,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toPetDomain(m model.Pet) pet.Pet {
	return pet.Pet{
		ID:         m.ID,
		Name:       m.Name,
		Owner:      m.Owner,
		TokenID:    m.TokenID,
		Species:    pet.Species(m.Species),
		Color:      m.Color,
		Pattern:    m.Pattern,
		Energy:     int(m.Energy),
		Hunger:     int(m.Hunger),
		Happiness:  int(m.Happiness),
		Level:      int(m.Level),
		Experience: int(m.Experience),
		HiddenTraits: pet.HiddenTraits{
			Trust:     int(m.Trust),
			Empathy:   int(m.Empathy),
			Curiosity: int(m.Curiosity),
		},
		Mood:       pet.Mood(m.Mood),
		LastFed:    m.LastFed,
		LastPlayed: m.LastPlayed,
		BirthDate:  m.BirthDate,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toPetDomains(rows []model.Pet) []pet.Pet {
	out := make([]pet.Pet, 0, len(rows))
	for _, row := range rows {
		out = append(out, toPetDomain(row))
	}
	return out
}
