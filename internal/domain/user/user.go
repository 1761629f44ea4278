package user

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"etherpets/internal/domain/quest"
)

var (
	ErrInvalidWallet     = errors.New("invalid wallet address")
	ErrDailyNotReady     = errors.New("daily reward not ready")
	ErrInsufficientCoins = errors.New("insufficient coins")
	ErrInsufficientItems = errors.New("insufficient items")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)

type DailyNotReadyError struct {
	Remaining time.Duration
}

func (e DailyNotReadyError) Error() string {
	return fmt.Sprintf("daily reward not ready, %s remaining", e.Remaining.Truncate(time.Second))
}

func (e DailyNotReadyError) Is(target error) bool {
	return target == ErrDailyNotReady
}

type User struct {
	WalletAddress     string                    `json:"walletAddress"`
	Username          string                    `json:"username"`
	Streak            int                       `json:"streak"`
	LastLogin         time.Time                 `json:"lastLogin"`
	Achievements      []string                  `json:"achievements"`
	AchievementPoints int                       `json:"achievementPoints"`
	Coins             int                       `json:"coins"`
	Tokens            int                       `json:"tokens"`
	Inventory         map[string]int            `json:"inventory"`
	QuestProgress     map[string]quest.Progress `json:"questProgress"`
	LastDailyReward   time.Time                 `json:"lastDailyReward"`
	CreatedAt         time.Time                 `json:"createdAt"`
}

func NormalizeWallet(raw string) (string, error) {
	addr := strings.TrimSpace(raw)
	if !common.IsHexAddress(addr) {
		return "", ErrInvalidWallet
	}
	if !strings.HasPrefix(addr, "0x") && !strings.HasPrefix(addr, "0X") {
		addr = "0x" + addr
	}
	return strings.ToLower(addr), nil
}

func New(wallet, username string, startingCoins int, now time.Time) User {
	return User{
		WalletAddress: wallet,
		Username:      username,
		Coins:         startingCoins,
		Achievements:  []string{},
		Inventory:     map[string]int{},
		QuestProgress: map[string]quest.Progress{},
		CreatedAt:     now,
	}
}

func (u User) Clone() User {
	out := u
	out.Achievements = append([]string(nil), u.Achievements...)
	out.Inventory = make(map[string]int, len(u.Inventory))
	for k, v := range u.Inventory {
		out.Inventory[k] = v
	}
	out.QuestProgress = make(map[string]quest.Progress, len(u.QuestProgress))
	for k, v := range u.QuestProgress {
		out.QuestProgress[k] = v
	}
	return out
}

// RegisterLogin updates the streak by calendar day in loc: first login starts
// at 1, a repeat login on the same day keeps it, the next day extends it and
// any longer gap restarts it.
func RegisterLogin(u User, now time.Time, loc *time.Location) User {
	if loc == nil {
		loc = time.UTC
	}
	switch {
	case u.LastLogin.IsZero():
		u.Streak = 1
	default:
		switch days := calendarDaysBetween(u.LastLogin, now, loc); {
		case days <= 0:
			if u.Streak < 1 {
				u.Streak = 1
			}
		case days == 1:
			u.Streak++
		default:
			u.Streak = 1
		}
	}
	u.LastLogin = now
	return u
}

func calendarDaysBetween(from, to time.Time, loc *time.Location) int {
	f := from.In(loc)
	t := to.In(loc)
	fd := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
	td := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Round(td.Sub(fd).Hours() / 24))
}

func ClaimDaily(u User, now time.Time, reward int, cooldown time.Duration) (User, error) {
	if !u.LastDailyReward.IsZero() {
		if elapsed := now.Sub(u.LastDailyReward); elapsed < cooldown {
			return u, DailyNotReadyError{Remaining: cooldown - elapsed}
		}
	}
	u = u.Clone()
	u.Coins += reward
	u.LastDailyReward = now
	return u, nil
}

func Credit(u User, amount int) User {
	u.Coins += amount
	return u
}

func Debit(u User, amount int) (User, error) {
	if amount < 0 {
		return u, ErrInvalidQuantity
	}
	if u.Coins < amount {
		return u, ErrInsufficientCoins
	}
	u.Coins -= amount
	return u, nil
}

func AddItem(u User, item string, qty int) (User, error) {
	if qty <= 0 {
		return u, ErrInvalidQuantity
	}
	if u.Inventory[item] > math.MaxInt-qty {
		return u, ErrInvalidQuantity
	}
	u = u.Clone()
	u.Inventory[item] += qty
	return u, nil
}

func TakeItem(u User, item string, qty int) (User, error) {
	if qty <= 0 {
		return u, ErrInvalidQuantity
	}
	if u.Inventory[item] < qty {
		return u, ErrInsufficientItems
	}
	u = u.Clone()
	u.Inventory[item] -= qty
	if u.Inventory[item] == 0 {
		delete(u.Inventory, item)
	}
	return u, nil
}

func (u User) HasAchievement(id string) bool {
	for _, a := range u.Achievements {
		if a == id {
			return true
		}
	}
	return false
}
