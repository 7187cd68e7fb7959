package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/business-model-api/infrastructure/database"
	"github.com/vfg2006/business-model-api/internal/config"
	_ "modernc.org/sqlite"
)

// Connection é usada no desenvolvimento local, na CLI e nos testes de repositório
type Connection struct {
	*sql.DB
}

var _ database.Conn = (*Connection)(nil)

func NewConnection(ctx context.Context, cfg config.Database) (*Connection, error) {
	return Open(ctx, cfg.DSN)
}

// Open abre o arquivo informado; ":memory:" cria um banco descartável
func Open(ctx context.Context, path string) (*Connection, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	if path == ":memory:" {
		dsn = "file::memory:?_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Uma única conexão serializa as escritas e mantém o banco em memória vivo
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &Connection{DB: db}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	return database.RunInTransaction(ctx, c.DB, fn)
}

func (c *Connection) Placeholder() squirrel.PlaceholderFormat {
	return squirrel.Question
}

// LockOwner não precisa fazer nada: com uma única conexão as transações já são serializadas
func (c *Connection) LockOwner(context.Context, *sql.Tx, int) error {
	return nil
}

func (c *Connection) Driver() string {
	return config.DriverSQLite
}
