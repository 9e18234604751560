package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xxxsen/markbook/internal/pkg/dbutil"
)

type Cleaner struct {
	db *sql.DB
}

func NewCleaner(db *sql.DB) *Cleaner {
	return &Cleaner{db: db}
}

// CleanAll removes every bookmark and then every user in one transaction.
func (c *Cleaner) CleanAll(ctx context.Context) error {
	return dbutil.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbutil.DBTX) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM bookmarks"); err != nil {
			return fmt.Errorf("delete bookmarks: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM users"); err != nil {
			return fmt.Errorf("delete users: %w", err)
		}
		return nil
	})
}
