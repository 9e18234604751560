package service

import (
	"context"

	"github.com/xxxsen/markbook/internal/model"
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, userID string) (*model.User, error)
	Update(ctx context.Context, userID string, patch model.UserPatch, mtime int64) error
}

type BookmarkStore interface {
	Create(ctx context.Context, b *model.Bookmark) error
	ListByUser(ctx context.Context, userID string) ([]model.Bookmark, error)
	GetByID(ctx context.Context, id string) (*model.Bookmark, error)
	Update(ctx context.Context, b *model.Bookmark) error
	Delete(ctx context.Context, userID, id string) error
}
