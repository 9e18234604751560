// Package testutil holds test doubles and database helpers shared by the
// package tests.
package testutil

import (
	"context"
	"sync"

	"github.com/xxxsen/markbook/internal/model"
	appErr "github.com/xxxsen/markbook/internal/pkg/errors"
)

// MemUserStore keeps users in memory with the same uniqueness and
// not-found semantics as repo.UserRepo.
type MemUserStore struct {
	mu    sync.Mutex
	users map[string]model.User
	// getErr, when set, is returned by GetByID to simulate a store outage
	getErr error
}

func NewMemUserStore() *MemUserStore {
	return &MemUserStore{users: make(map[string]model.User)}
}

func (s *MemUserStore) Create(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; ok {
		return appErr.ErrConflict
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return appErr.ErrConflict
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (s *MemUserStore) GetByID(ctx context.Context, userID string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	u, ok := s.users[userID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	return &u, nil
}

func (s *MemUserStore) Update(ctx context.Context, userID string, patch model.UserPatch, mtime int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return appErr.ErrNotFound
	}
	if patch.Email != nil {
		for id, other := range s.users {
			if id != userID && other.Email == *patch.Email {
				return appErr.ErrConflict
			}
		}
		u.Email = *patch.Email
	}
	if patch.FirstName != nil {
		v := *patch.FirstName
		u.FirstName = &v
	}
	if patch.LastName != nil {
		v := *patch.LastName
		u.LastName = &v
	}
	u.Mtime = mtime
	s.users[userID] = u
	return nil
}

// Delete drops a user; no API exposes this, tests use it to simulate a
// removed account.
func (s *MemUserStore) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
}

// FailGetByID makes every later GetByID return err; nil restores normal
// behaviour.
func (s *MemUserStore) FailGetByID(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getErr = err
}

type MemBookmarkStore struct {
	mu        sync.Mutex
	bookmarks []model.Bookmark
}

func NewMemBookmarkStore() *MemBookmarkStore {
	return &MemBookmarkStore{}
}

func (s *MemBookmarkStore) Create(ctx context.Context, b *model.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookmarks = append(s.bookmarks, *b)
	return nil
}

func (s *MemBookmarkStore) ListByUser(ctx context.Context, userID string) ([]model.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]model.Bookmark, 0)
	for _, b := range s.bookmarks {
		if b.UserID == userID {
			items = append(items, b)
		}
	}
	return items, nil
}

func (s *MemBookmarkStore) GetByID(ctx context.Context, id string) (*model.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookmarks {
		if b.ID == id {
			found := b
			return &found, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (s *MemBookmarkStore) Update(ctx context.Context, b *model.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookmarks {
		if s.bookmarks[i].ID == b.ID && s.bookmarks[i].UserID == b.UserID {
			s.bookmarks[i] = *b
			return nil
		}
	}
	return appErr.ErrNotFound
}

func (s *MemBookmarkStore) Delete(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookmarks {
		if s.bookmarks[i].ID == id && s.bookmarks[i].UserID == userID {
			s.bookmarks = append(s.bookmarks[:i], s.bookmarks[i+1:]...)
			return nil
		}
	}
	return appErr.ErrNotFound
}
