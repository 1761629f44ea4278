package progress

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"etherpets/internal/app/ports"
	"etherpets/internal/domain/achievement"
	"etherpets/internal/domain/pet"
	"etherpets/internal/domain/quest"
	"etherpets/internal/domain/user"
)

var (
	ErrUnknownQuest = errors.New("unknown quest")
	ErrNoPet        = errors.New("user has no pet to receive the reward")
)

type UseCase struct {
	TxManager ports.TxManager
	Users     ports.UserRepository
	Pets      ports.PetRepository
	Events    ports.EventRepository
	Notifier  ports.Notifier
	Catalog   quest.Catalog
	Location  *time.Location
	GrantQuestCoins bool
	Now             func() time.Time
}

type AchievementStatus struct {
	achievement.Definition
	Unlocked bool `json:"unlocked"`
	Progress int  `json:"progress"`
}

type AchievementsResponse struct {
	Achievements      []AchievementStatus      `json:"achievements"`
	NewlyUnlocked     []achievement.Definition `json:"newlyUnlocked"`
	AchievementPoints int                      `json:"achievementPoints"`
	Coins             int                      `json:"coins"`
}

type QuestStatus struct {
	quest.Definition
	Progress quest.Progress `json:"progress"`
}

type ClaimResponse struct {
	Quest     quest.Definition `json:"quest"`
	Reward    quest.Reward     `json:"reward"`
	Pet       pet.Pet          `json:"pet"`
	LeveledUp bool             `json:"leveledUp"`
	Coins     int              `json:"coins"`
}

func (u UseCase) Achievements(ctx context.Context, wallet string) (AchievementsResponse, error) {
	addr, err := user.NormalizeWallet(wallet)
	if err != nil {
		return AchievementsResponse{}, err
	}

	var out AchievementsResponse
	var unlocked []achievement.Definition
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := u.Users.GetByWallet(txCtx, addr)
		if err != nil {
			return err
		}
		pets, err := u.Pets.ListByOwner(txCtx, addr)
		if err != nil {
			return err
		}
		events, err := u.Events.List(txCtx, ports.EventQuery{PetIDs: petIDs(pets)})
		if err != nil {
			return err
		}

		ev := achievement.Evaluate(current, pets, events)
		if len(ev.Unlocked) > 0 {
			if err := u.Users.Save(txCtx, ev.User); err != nil {
				return fmt.Errorf("save user: %w", err)
			}
		}
		unlocked = ev.Unlocked
		out = AchievementsResponse{
			NewlyUnlocked:     ev.Unlocked,
			AchievementPoints: ev.User.AchievementPoints,
			Coins:             ev.User.Coins,
		}
		for _, d := range achievement.All() {
			out.Achievements = append(out.Achievements, AchievementStatus{
				Definition: d,
				Unlocked:   ev.User.HasAchievement(d.ID),
				Progress:   ev.Progress[d.ID],
			})
		}
		return nil
	})
	if err != nil {
		return AchievementsResponse{}, err
	}

	for _, d := range unlocked {
		u.notify(ctx, ports.Notification{
			Kind:    ports.NotifyAchievement,
			Owner:   addr,
			Title:   "Achievement unlocked!",
			Message: fmt.Sprintf("%s (+%d points)", d.Name, d.Points),
		})
	}
	return out, nil
}

func (u UseCase) Quests(ctx context.Context, wallet string) ([]QuestStatus, error) {
	addr, err := user.NormalizeWallet(wallet)
	if err != nil {
		return nil, err
	}

	var out []QuestStatus
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := u.Users.GetByWallet(txCtx, addr)
		if err != nil {
			return err
		}
		pets, err := u.Pets.ListByOwner(txCtx, addr)
		if err != nil {
			return err
		}
		current, err = u.refresh(txCtx, current, petIDs(pets))
		if err != nil {
			return err
		}
		if err := u.Users.Save(txCtx, current); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		for _, d := range u.Catalog.All() {
			out = append(out, QuestStatus{Definition: d, Progress: current.QuestProgress[d.ID]})
		}
		return nil
	})
	return out, err
}

// ClaimQuest pays out experience to the owner's first pet. Coins are only
// credited when GrantQuestCoins is set.
func (u UseCase) ClaimQuest(ctx context.Context, wallet, questID string) (ClaimResponse, error) {
	addr, err := user.NormalizeWallet(wallet)
	if err != nil {
		return ClaimResponse{}, err
	}
	def, ok := u.Catalog.Get(strings.TrimSpace(questID))
	if !ok {
		return ClaimResponse{}, ErrUnknownQuest
	}
	now := u.now()

	var out ClaimResponse
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := u.Users.GetByWallet(txCtx, addr)
		if err != nil {
			return err
		}
		pets, err := u.Pets.ListByOwner(txCtx, addr)
		if err != nil {
			return err
		}
		if len(pets) == 0 {
			return ErrNoPet
		}
		current, err = u.refresh(txCtx, current, petIDs(pets))
		if err != nil {
			return err
		}

		claimed, reward, err := quest.Claim(def, current.QuestProgress[def.ID], now)
		if err != nil {
			return err
		}
		current.QuestProgress[def.ID] = claimed
		if u.GrantQuestCoins {
			current = user.Credit(current, reward.Coins)
		}

		first := pets[0]
		leveled, leveledUp, _ := pet.AddExperience(first, reward.Experience)
		leveled.UpdatedAt = now
		if err := u.Pets.Save(txCtx, leveled); err != nil {
			return fmt.Errorf("save pet: %w", err)
		}
		if err := u.Events.Append(txCtx, []pet.GameEvent{{
			PetID:            leveled.ID,
			Type:             pet.EventExperience,
			Description:      fmt.Sprintf("%s earned %d experience from %s", leveled.Name, reward.Experience, def.Name),
			ExperienceGained: reward.Experience,
			OccurredAt:       now,
		}}); err != nil {
			return fmt.Errorf("append event: %w", err)
		}
		if err := u.Users.Save(txCtx, current); err != nil {
			return fmt.Errorf("save user: %w", err)
		}

		out = ClaimResponse{Quest: def, Reward: reward, Pet: leveled, LeveledUp: leveledUp, Coins: current.Coins}
		return nil
	})
	if err != nil {
		return ClaimResponse{}, err
	}
	if out.LeveledUp {
		u.notify(ctx, ports.Notification{
			Kind:    ports.NotifyLevelUp,
			Owner:   addr,
			PetID:   out.Pet.ID,
			Title:   "Level up!",
			Message: fmt.Sprintf("%s reached level %d", out.Pet.Name, out.Pet.Level),
		})
	}
	return out, nil
}

func (u UseCase) refresh(ctx context.Context, current user.User, ids []string) (user.User, error) {
	now := u.now()
	current = current.Clone()
	for _, d := range u.Catalog.All() {
		start := quest.WindowStart(d.Period, now, u.Location)
		count, err := u.Events.Count(ctx, ports.EventQuery{
			PetIDs: ids,
			Type:   d.Objective.EventType,
			From:   start,
			To:     quest.WindowEnd(d.Period, start),
		})
		if err != nil {
			return current, fmt.Errorf("count %s events: %w", d.ID, err)
		}
		current.QuestProgress[d.ID] = quest.CheckProgress(d, current.QuestProgress[d.ID], count, now, u.Location)
	}
	return current, nil
}

func (u UseCase) notify(ctx context.Context, n ports.Notification) {
	if u.Notifier == nil {
		return
	}
	if err := u.Notifier.Notify(ctx, n); err != nil {
		log.Warn().Err(err).Str("owner", n.Owner).Str("kind", string(n.Kind)).Msg("notification failed")
	}
}

func (u UseCase) now() time.Time {
	if u.Now == nil {
		return time.Now()
	}
	return u.Now()
}

func petIDs(pets []pet.Pet) []string {
	ids := make([]string, 0, len(pets))
	for _, p := range pets {
		ids = append(ids, p.ID)
	}
	return ids
}
