package postgres

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/business-model-api/infrastructure/database"
	"github.com/vfg2006/business-model-api/internal/config"
)

type Connection struct {
	*sql.DB
}

var _ database.Conn = (*Connection)(nil)

func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return &Connection{DB: db}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// RunInTransaction run a query in the transaction
func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	return database.RunInTransaction(ctx, c.DB, fn)
}

func (c *Connection) Placeholder() squirrel.PlaceholderFormat {
	return squirrel.Dollar
}

// LockOwner usa um advisory lock liberado automaticamente no commit ou rollback
func (c *Connection) LockOwner(ctx context.Context, tx *sql.Tx, ownerID int) error {
	_, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", int64(ownerID))
	return err
}

func (c *Connection) Driver() string {
	return config.DriverPostgres
}
