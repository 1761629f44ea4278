package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"etherpets/internal/app/ports"
	"etherpets/internal/domain/pet"
	"etherpets/internal/domain/shop"
	"etherpets/internal/domain/user"
)

var (
	ErrNotOwner        = errors.New("pet does not belong to user")
	ErrInvalidQuantity = user.ErrInvalidQuantity
)

type Settings struct {
	StartingCoins int
	DailyReward   int
	DailyCooldown time.Duration
	Location      *time.Location
}

type UseCase struct {
	TxManager ports.TxManager
	Users     ports.UserRepository
	Pets      ports.PetRepository
	Events    ports.EventRepository
	Settings  Settings
	Now       func() time.Time
}

type PurchaseResponse struct {
	User  user.User `json:"user"`
	Item  shop.Item `json:"item"`
	Spent int       `json:"spent"`
}

type UseItemResponse struct {
	User   user.User        `json:"user"`
	Result pet.ActionResult `json:"result"`
}

func (u UseCase) Login(ctx context.Context, wallet, username string) (user.User, bool, error) {
	addr, err := user.NormalizeWallet(wallet)
	if err != nil {
		return user.User{}, false, err
	}
	now := u.now()

	var (
		out     user.User
		created bool
	)
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := u.Users.GetByWallet(txCtx, addr)
		switch {
		case errors.Is(err, ports.ErrNotFound):
			current = user.New(addr, strings.TrimSpace(username), u.Settings.StartingCoins, now)
			current = user.RegisterLogin(current, now, u.Settings.Location)
			if err := u.Users.Create(txCtx, current); err != nil {
				return fmt.Errorf("create user: %w", err)
			}
			out, created = current, true
			return nil
		case err != nil:
			return err
		}

		if name := strings.TrimSpace(username); name != "" {
			current.Username = name
		}
		current = user.RegisterLogin(current, now, u.Settings.Location)
		if err := u.Users.Save(txCtx, current); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		out = current
		return nil
	})
	if err != nil {
		return user.User{}, false, err
	}
	return out, created, nil
}

func (u UseCase) Get(ctx context.Context, wallet string) (user.User, error) {
	addr, err := user.NormalizeWallet(wallet)
	if err != nil {
		return user.User{}, err
	}
	return u.Users.GetByWallet(ctx, addr)
}

func (u UseCase) ClaimDaily(ctx context.Context, wallet string) (user.User, error) {
	return u.update(ctx, wallet, func(_ context.Context, current user.User) (user.User, error) {
		return user.ClaimDaily(current, u.now(), u.Settings.DailyReward, u.Settings.DailyCooldown)
	})
}

const MaxPurchaseQuantity = 999

func (u UseCase) Purchase(ctx context.Context, wallet, itemID string, qty int) (PurchaseResponse, error) {
	if qty <= 0 || qty > MaxPurchaseQuantity {
		return PurchaseResponse{}, ErrInvalidQuantity
	}
	item, err := shop.Get(itemID)
	if err != nil {
		return PurchaseResponse{}, err
	}
	cost := item.Price * qty

	updated, err := u.update(ctx, wallet, func(_ context.Context, current user.User) (user.User, error) {
		next, err := user.Debit(current, cost)
		if err != nil {
			return current, err
		}
		return user.AddItem(next, string(item.ID), qty)
	})
	if err != nil {
		return PurchaseResponse{}, err
	}
	return PurchaseResponse{User: updated, Item: item, Spent: cost}, nil
}

func (u UseCase) UseItem(ctx context.Context, wallet, petID, itemID string) (UseItemResponse, error) {
	item, err := shop.Get(itemID)
	if err != nil {
		return UseItemResponse{}, err
	}

	var out UseItemResponse
	updated, err := u.update(ctx, wallet, func(txCtx context.Context, current user.User) (user.User, error) {
		p, err := u.Pets.GetByID(txCtx, strings.TrimSpace(petID))
		if err != nil {
			return current, err
		}
		if p.Owner != current.WalletAddress {
			return current, ErrNotOwner
		}
		next, err := user.TakeItem(current, string(item.ID), 1)
		if err != nil {
			return current, err
		}
		result := shop.ApplyItem(p, item, u.now())
		if err := u.Pets.Save(txCtx, result.Pet); err != nil {
			return current, fmt.Errorf("save pet: %w", err)
		}
		events := []pet.GameEvent{result.Event}
		if err := u.Events.Append(txCtx, events); err != nil {
			return current, fmt.Errorf("append event: %w", err)
		}
		result.Event = events[0]
		out.Result = result
		return next, nil
	})
	if err != nil {
		return UseItemResponse{}, err
	}
	out.User = updated
	return out, nil
}

func (u UseCase) update(ctx context.Context, wallet string, fn func(context.Context, user.User) (user.User, error)) (user.User, error) {
	addr, err := user.NormalizeWallet(wallet)
	if err != nil {
		return user.User{}, err
	}
	var out user.User
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := u.Users.GetByWallet(txCtx, addr)
		if err != nil {
			return err
		}
		next, err := fn(txCtx, current)
		if err != nil {
			return err
		}
		if err := u.Users.Save(txCtx, next); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		out = next
		return nil
	})
	return out, err
}

func (u UseCase) now() time.Time {
	if u.Now == nil {
		return time.Now()
	}
	return u.Now()
}
