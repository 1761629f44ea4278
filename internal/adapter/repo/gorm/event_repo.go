package gormrepo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"etherpets/internal/adapter/repo/gorm/model"
	"etherpets/internal/app/ports"
	"etherpets/internal/domain/pet"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, events []pet.GameEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.GameEvent, 0, len(events))
	for i := range events {
		if events[i].ID == "" {
			events[i].ID = uuid.NewString()
		}
		rows = append(rows, toEventModel(events[i]))
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

func (r EventRepo) ListByPet(ctx context.Context, petID string, limit int) ([]pet.GameEvent, error) {
	rows := []model.GameEvent{}
	query := getDBFromCtx(ctx, r.db).
		Where("pet_id = ?", petID).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "occurred_at"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEventDomains(rows), nil
}

func (r EventRepo) List(ctx context.Context, q ports.EventQuery) ([]pet.GameEvent, error) {
	if q.PetIDs != nil && len(q.PetIDs) == 0 {
		return []pet.GameEvent{}, nil
	}
	rows := []model.GameEvent{}
	if err := r.scoped(ctx, q).Order("occurred_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEventDomains(rows), nil
}

func (r EventRepo) Count(ctx context.Context, q ports.EventQuery) (int, error) {
	if q.PetIDs != nil && len(q.PetIDs) == 0 {
		return 0, nil
	}
	var n int64
	if err := r.scoped(ctx, q).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r EventRepo) DeleteOrphaned(ctx context.Context) (int64, error) {
	res := getDBFromCtx(ctx, r.db).Exec(`
DELETE FROM game_events e
WHERE NOT EXISTS (SELECT 1 FROM pets p WHERE p.id = e.pet_id)`)
	return res.RowsAffected, res.Error
}

func (r EventRepo) scoped(ctx context.Context, q ports.EventQuery) *gorm.DB {
	db := getDBFromCtx(ctx, r.db).Model(&model.GameEvent{})
	if q.PetIDs != nil {
		db = db.Where("pet_id IN ?", q.PetIDs)
	}
	if q.Type != "" {
		db = db.Where("type = ?", string(q.Type))
	}
	if !q.From.IsZero() {
		db = db.Where("occurred_at >= ?", q.From)
	}
	if !q.To.IsZero() {
		db = db.Where("occurred_at < ?", q.To)
	}
	return db
}

func toEventModel(e pet.GameEvent) model.GameEvent {
	return model.GameEvent{
		ID:               e.ID,
		PetID:            e.PetID,
		Type:             string(e.Type),
		Description:      e.Description,
		EnergyChange:     int32(e.EnergyChange),
		HungerChange:     int32(e.HungerChange),
		HappinessChange:  int32(e.HappinessChange),
		ExperienceGained: int32(e.ExperienceGained),
		TrustChange:      int32(e.HiddenTraitsChange.Trust),
		EmpathyChange:    int32(e.HiddenTraitsChange.Empathy),
		CuriosityChange:  int32(e.HiddenTraitsChange.Curiosity),
		OccurredAt:       e.OccurredAt,
	}
}

func toEventDomains(rows []model.GameEvent) []pet.GameEvent {
	out := make([]pet.GameEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, pet.GameEvent{
			ID:               row.ID,
			PetID:            row.PetID,
			Type:             pet.EventType(row.Type),
			Description:      row.Description,
			EnergyChange:     int(row.EnergyChange),
			HungerChange:     int(row.HungerChange),
			HappinessChange:  int(row.HappinessChange),
			ExperienceGained: int(row.ExperienceGained),
			HiddenTraitsChange: pet.HiddenTraits{
				Trust:     int(row.TrustChange),
				Empathy:   int(row.EmpathyChange),
				Curiosity: int(row.CuriosityChange),
			},
			OccurredAt: row.OccurredAt,
		})
	}
	return out
}
