package gormrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"etherpets/internal/adapter/repo/gorm/model"
	"etherpets/internal/app/ports"
	"etherpets/internal/domain/quest"
	"etherpets/internal/domain/user"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return UserRepo{db: db}
}

func (r UserRepo) GetByWallet(ctx context.Context, wallet string) (user.User, error) {
	var m model.User
	if err := getDBFromCtx(ctx, r.db).Where("wallet_address = ?", wallet).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, ports.ErrNotFound
		}
		return user.User{}, err
	}
	return toUserDomain(m), nil
}

func (r UserRepo) Create(ctx context.Context, u user.User) error {
	m := toUserModel(u)
	m.UpdatedAt = m.CreatedAt
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r UserRepo) Save(ctx context.Context, u user.User) error {
	m := toUserModel(u)
	res := getDBFromCtx(ctx, r.db).
		Model(&model.User{}).
		Where("wallet_address = ?", u.WalletAddress).
		Updates(map[string]any{
			"username":           m.Username,
			"streak":             m.Streak,
			"last_login":         m.LastLogin,
			"achievements":       m.Achievements,
			"achievement_points": m.AchievementPoints,
			"coins":              m.Coins,
			"tokens":             m.Tokens,
			"inventory":          m.Inventory,
			"quest_progress":     m.QuestProgress,
			"last_daily_reward":  m.LastDailyReward,
			"updated_at":         time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func toUserModel(u user.User) model.User {
	achievements := u.Achievements
	if achievements == nil {
		achievements = []string{}
	}
	inventory := u.Inventory
	if inventory == nil {
		inventory = map[string]int{}
	}
	progress := make(map[string]model.QuestProgress, len(u.QuestProgress))
	for id, p := range u.QuestProgress {
		progress[id] = model.QuestProgress{
			Current:     p.Current,
			Completed:   p.Completed,
			Claimed:     p.Claimed,
			ClaimedAt:   p.ClaimedAt,
			WindowStart: p.WindowStart,
		}
	}
	return model.User{
		WalletAddress:     u.WalletAddress,
		Username:          u.Username,
		Streak:            int32(u.Streak),
		LastLogin:         timePtr(u.LastLogin),
		Achievements:      datatypes.NewJSONType(achievements),
		AchievementPoints: int32(u.AchievementPoints),
		Coins:             int64(u.Coins),
		Tokens:            int64(u.Tokens),
		Inventory:         datatypes.NewJSONType(inventory),
		QuestProgress:     datatypes.NewJSONType(progress),
		LastDailyReward:   timePtr(u.LastDailyReward),
		CreatedAt:         u.CreatedAt,
	}
}

func toUserDomain(m model.User) user.User {
	out := user.User{
		WalletAddress:     m.WalletAddress,
		Username:          m.Username,
		Streak:            int(m.Streak),
		LastLogin:         timeVal(m.LastLogin),
		Achievements:      append([]string{}, m.Achievements.Data()...),
		AchievementPoints: int(m.AchievementPoints),
		Coins:             int(m.Coins),
		Tokens:            int(m.Tokens),
		Inventory:         map[string]int{},
		QuestProgress:     map[string]quest.Progress{},
		LastDailyReward:   timeVal(m.LastDailyReward),
		CreatedAt:         m.CreatedAt,
	}
	for k, v := range m.Inventory.Data() {
		out.Inventory[k] = v
	}
	for id, p := range m.QuestProgress.Data() {
		out.QuestProgress[id] = quest.Progress{
			Current:     p.Current,
			Completed:   p.Completed,
			Claimed:     p.Claimed,
			ClaimedAt:   p.ClaimedAt,
			WindowStart: p.WindowStart,
		}
	}
	return out
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeVal(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
