package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/markbook/internal/model"
	"github.com/xxxsen/markbook/internal/pkg/dbutil"
	appErr "github.com/xxxsen/markbook/internal/pkg/errors"
)

var userColumns = []string{"id", "email", "password_hash", "first_name", "last_name", "ctime", "mtime"}

type UserRepo struct {
	db dbutil.DBTX
}

func NewUserRepo(db dbutil.DBTX) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	data := map[string]interface{}{
		"id":            user.ID,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"ctime":         user.Ctime,
		"mtime":         user.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("users", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"email": email})
}

func (r *UserRepo) GetByID(ctx context.Context, userID string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"id": userID})
}

func (r *UserRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.User, error) {
	sqlStr, args, err := builder.BuildSelect("users", where, userColumns)
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
	var user model.User
	if err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.Ctime, &user.Mtime); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update writes the set fields of patch. A taken email yields ErrConflict.
func (r *UserRepo) Update(ctx context.Context, userID string, patch model.UserPatch, mtime int64) error {
	update := map[string]interface{}{"mtime": mtime}
	if patch.Email != nil {
		update["email"] = *patch.Email
	}
	if patch.FirstName != nil {
		update["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		update["last_name"] = *patch.LastName
	}
	sqlStr, args, err := builder.BuildUpdate("users", map[string]interface{}{"id": userID}, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
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

var _ dbutil.DBTX = (*sql.DB)(nil)
