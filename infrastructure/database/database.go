// Package database define o contrato comum às conexões Postgres e SQLite
package database

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
)

// Queryer é satisfeito tanto por *sql.DB quanto por *sql.Tx
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type Conn interface {
	Queryer
	Close() error
	Ping(context.Context) error
	RunInTransaction(context.Context, func(*sql.Tx) error) error

	// Placeholder devolve o formato de parâmetros do dialeto para o squirrel
	Placeholder() squirrel.PlaceholderFormat

	// LockOwner serializa, até o fim da transação, escritas concorrentes do mesmo usuário
	LockOwner(ctx context.Context, tx *sql.Tx, ownerID int) error

	Driver() string
}

// RunInTransaction executa fn numa transação, com rollback em erro ou panic
func RunInTransaction(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_ = tx.Rollback()
			panic(err)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return rbErr
		}
		return err
	}

	return tx.Commit()
}

// ExecScript executa as instruções de um script de schema uma a uma
func ExecScript(ctx context.Context, conn Conn, statements []string) error {
	return conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
}
