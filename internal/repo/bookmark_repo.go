package repo

import (
	"context"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/markbook/internal/model"
	"github.com/xxxsen/markbook/internal/pkg/dbutil"
	appErr "github.com/xxxsen/markbook/internal/pkg/errors"
)

var bookmarkColumns = []string{"id", "user_id", "title", "description", "link", "ctime", "mtime"}

type BookmarkRepo struct {
	db dbutil.DBTX
}

func NewBookmarkRepo(db dbutil.DBTX) *BookmarkRepo {
	return &BookmarkRepo{db: db}
}

func (r *BookmarkRepo) Create(ctx context.Context, b *model.Bookmark) error {
	data := map[string]interface{}{
		"id":          b.ID,
		"user_id":     b.UserID,
		"title":       b.Title,
		"description": b.Description,
		"link":        b.Link,
		"ctime":       b.Ctime,
		"mtime":       b.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("bookmarks", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *BookmarkRepo) ListByUser(ctx context.Context, userID string) ([]model.Bookmark, error) {
	where := map[string]interface{}{"user_id": userID, "_orderby": "ctime asc, id asc"}
	sqlStr, args, err := builder.BuildSelect("bookmarks", where, bookmarkColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := make([]model.Bookmark, 0)
	for rows.Next() {
		var b model.Bookmark
		if err := rows.Scan(&b.ID, &b.UserID, &b.Title, &b.Description, &b.Link, &b.Ctime, &b.Mtime); err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

// GetByID loads a bookmark regardless of owner; callers enforce ownership.
func (r *BookmarkRepo) GetByID(ctx context.Context, id string) (*model.Bookmark, error) {
	sqlStr, args, err := builder.BuildSelect("bookmarks", map[string]interface{}{"id": id}, bookmarkColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, appErr.ErrNotFound
	}
	var b model.Bookmark
	if err := rows.Scan(&b.ID, &b.UserID, &b.Title, &b.Description, &b.Link, &b.Ctime, &b.Mtime); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookmarkRepo) Update(ctx context.Context, b *model.Bookmark) error {
	where := map[string]interface{}{
		"id":      b.ID,
		"user_id": b.UserID,
	}
	update := map[string]interface{}{
		"title":       b.Title,
		"description": b.Description,
		"link":        b.Link,
		"mtime":       b.Mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("bookmarks", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *BookmarkRepo) Delete(ctx context.Context, userID, id string) error {
	where := map[string]interface{}{
		"id":      id,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildDelete("bookmarks", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}
