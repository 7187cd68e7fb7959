// Package connector abre a conexão do driver configurado
package connector

import (
	"context"
	"fmt"

	"github.com/vfg2006/business-model-api/infrastructure/database"
	"github.com/vfg2006/business-model-api/infrastructure/database/postgres"
	"github.com/vfg2006/business-model-api/infrastructure/database/sqlite"
	"github.com/vfg2006/business-model-api/internal/config"
)

func Open(ctx context.Context, cfg config.Database) (database.Conn, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		conn, err := postgres.NewConnection(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return conn, nil
	case config.DriverSQLite:
		conn, err := sqlite.NewConnection(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return conn, nil
	default:
		return nil, fmt.Errorf("driver de banco não suportado: %q", cfg.Driver)
	}
}
