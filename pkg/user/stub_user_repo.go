package user

import (
	"context"
	"sync"
)

type StubUserRepo struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewStubUserRepo() *StubUserRepo {
	return &StubUserRepo{users: make(map[string]User)}
}

func (r *StubUserRepo) CreateUser(ctx context.Context, user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Uid] = user
	return user, nil
}

func (r *StubUserRepo) GetUserByUid(ctx context.Context, uid string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[uid]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (r *StubUserRepo) UpdateUser(ctx context.Context, uid string, user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[uid]; !ok {
		return User{}, ErrUserNotFound
	}
	user.Uid = uid
	r.users[uid] = user
	return user, nil
}

func (r *StubUserRepo) DeleteUser(ctx context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, uid)
	return nil
}
