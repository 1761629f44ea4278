package model

import (
	"time"

	"gorm.io/datatypes"
)

type Pet struct {
	ID         string    `gorm:"column:id;primaryKey"`
	Name       string    `gorm:"column:name;not null"`
	Owner      string    `gorm:"column:owner;not null;index"`
	TokenID    string    `gorm:"column:token_id"`
	Species    string    `gorm:"column:species;not null"`
	Color      string    `gorm:"column:color"`
	Pattern    string    `gorm:"column:pattern"`
	Energy     int32     `gorm:"column:energy;not null"`
	Hunger     int32     `gorm:"column:hunger;not null"`
	Happiness  int32     `gorm:"column:happiness;not null"`
	Level      int32     `gorm:"column:level;not null"`
	Experience int32     `gorm:"column:experience;not null"`
	Trust      int32     `gorm:"column:trust;not null"`
	Empathy    int32     `gorm:"column:empathy;not null"`
	Curiosity  int32     `gorm:"column:curiosity;not null"`
	Mood       string    `gorm:"column:mood;not null"`
	LastFed    time.Time `gorm:"column:last_fed;not null"`
	LastPlayed time.Time `gorm:"column:last_played;not null"`
	BirthDate  time.Time `gorm:"column:birth_date;not null"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null"`
}

func (Pet) TableName() string { return "pets" }

type QuestProgress struct {
	Current     int        `json:"current"`
	Completed   bool       `json:"completed"`
	Claimed     bool       `json:"claimed"`
	ClaimedAt   *time.Time `json:"claimed_at,omitempty"`
	WindowStart time.Time  `json:"window_start"`
}

type User struct {
	WalletAddress     string                                       `gorm:"column:wallet_address;primaryKey"`
	Username          string                                       `gorm:"column:username"`
	Streak            int32                                        `gorm:"column:streak;not null"`
	LastLogin         *time.Time                                   `gorm:"column:last_login"`
	Achievements      datatypes.JSONType[[]string]                 `gorm:"column:achievements;type:jsonb;not null"`
	AchievementPoints int32                                        `gorm:"column:achievement_points;not null"`
	Coins             int64                                        `gorm:"column:coins;not null"`
	Tokens            int64                                        `gorm:"column:tokens;not null"`
	Inventory         datatypes.JSONType[map[string]int]           `gorm:"column:inventory;type:jsonb;not null"`
	QuestProgress     datatypes.JSONType[map[string]QuestProgress] `gorm:"column:quest_progress;type:jsonb;not null"`
	LastDailyReward   *time.Time                                   `gorm:"column:last_daily_reward"`
	CreatedAt         time.Time                                    `gorm:"column:created_at;not null"`
	UpdatedAt         time.Time                                    `gorm:"column:updated_at;not null"`
}

func (User) TableName() string { return "users" }

type GameEvent struct {
	ID               string    `gorm:"column:id;primaryKey"`
	PetID            string    `gorm:"column:pet_id;not null;index"`
	Type             string    `gorm:"column:type;not null"`
	Description      string    `gorm:"column:description"`
	EnergyChange     int32     `gorm:"column:energy_change;not null"`
	HungerChange     int32     `gorm:"column:hunger_change;not null"`
	HappinessChange  int32     `gorm:"column:happiness_change;not null"`
	ExperienceGained int32     `gorm:"column:experience_gained;not null"`
	TrustChange      int32     `gorm:"column:trust_change;not null"`
	EmpathyChange    int32     `gorm:"column:empathy_change;not null"`
	CuriosityChange  int32     `gorm:"column:curiosity_change;not null"`
	OccurredAt       time.Time `gorm:"column:occurred_at;not null"`
}

func (GameEvent) TableName() string { return "game_events" }
