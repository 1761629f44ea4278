package memory

import (
	"context"

	"etherpets/internal/app/ports"
	"etherpets/internal/domain/user"
)

type UserRepo struct {
	store *Store
}

func NewUserRepo(store *Store) UserRepo {
	return UserRepo{store: store}
}

func (r UserRepo) GetByWallet(_ context.Context, wallet string) (user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	u, ok := r.store.users[wallet]
	if !ok {
		return user.User{}, ports.ErrNotFound
	}
	return u.Clone(), nil
}

func (r UserRepo) Create(_ context.Context, u user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.users[u.WalletAddress]; exists {
		return ports.ErrConflict
	}
	r.store.users[u.WalletAddress] = u.Clone()
	return nil
}

func (r UserRepo) Save(_ context.Context, u user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[u.WalletAddress]; !ok {
		return ports.ErrNotFound
	}
	r.store.users[u.WalletAddress] = u.Clone()
	return nil
}
