package service

import (
	"context"

	"github.com/xxxsen/markbook/internal/model"
	appErr "github.com/xxxsen/markbook/internal/pkg/errors"
	"github.com/xxxsen/markbook/internal/pkg/timeutil"
)

type BookmarkService struct {
	bookmarks BookmarkStore
}

func NewBookmarkService(bookmarks BookmarkStore) *BookmarkService {
	return &BookmarkService{bookmarks: bookmarks}
}

type BookmarkCreateInput struct {
	Title       string
	Description string
	Link        string
}

func (s *BookmarkService) Create(ctx context.Context, userID string, input BookmarkCreateInput) (*model.Bookmark, error) {
	now := timeutil.NowUnix()
	b := &model.Bookmark{
		ID:          newID(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Link:        input.Link,
		Ctime:       now,
		Mtime:       now,
	}
	if err := s.bookmarks.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BookmarkService) List(ctx context.Context, userID string) ([]model.Bookmark, error) {
	return s.bookmarks.ListByUser(ctx, userID)
}

func (s *BookmarkService) Get(ctx context.Context, userID, id string) (*model.Bookmark, error) {
	return s.owned(ctx, userID, id)
}

func (s *BookmarkService) Update(ctx context.Context, userID, id string, patch model.BookmarkPatch) (*model.Bookmark, error) {
	b, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !patch.Apply(b) {
		return b, nil
	}
	b.Mtime = timeutil.NowUnix()
	if err := s.bookmarks.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BookmarkService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.bookmarks.Delete(ctx, userID, id)
}

func (s *BookmarkService) owned(ctx context.Context, userID, id string) (*model.Bookmark, error) {
	b, err := s.bookmarks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ensureOwner(b, userID); err != nil {
		return nil, err
	}
	return b, nil
}

// ensureOwner hides a foreign bookmark behind ErrNotFound so callers cannot
// probe for ids they do not own.
func ensureOwner(b *model.Bookmark, userID string) error {
	if b == nil || userID == "" || b.UserID != userID {
		return appErr.ErrNotFound
	}
	return nil
}
