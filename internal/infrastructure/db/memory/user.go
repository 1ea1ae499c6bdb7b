package memory

import (
	"context"
	"sync"
	"time"

	"contacts-api/internal/domain/user"
)

type UserStore struct {
	mu     sync.RWMutex
	nextID int64
	users  map[user.ID]user.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[user.ID]user.User)}
}

func (s *UserStore) FetchUserByID(_ context.Context, id user.ID) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}

	return &u, nil
}

func (s *UserStore) FetchUserByEmail(_ context.Context, email string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}

	return nil, user.ErrNotFound
}

func (s *UserStore) CreateUser(_ context.Context, email, passwordHash string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return nil, user.ErrEmailExists
		}
	}

	s.nextID++
	u := user.User{
		ID:           user.ID(s.nextID),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[u.ID] = u

	return &u, nil
}

func (s *UserStore) UpdateAvatarURL(_ context.Context, id user.ID, url string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	u.AvatarURL = &url
	s.users[id] = u

	return &u, nil
}
