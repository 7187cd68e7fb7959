// Package migration cria o schema do banco para o driver configurado
package migration

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-model-api/infrastructure/database"
)

//go:embed sql/*.sql
var scripts embed.FS

// Statements devolve as instruções do schema do dialeto, na ordem do script
func Statements(driver string) ([]string, error) {
	content, err := scripts.ReadFile(fmt.Sprintf("sql/%s.sql", driver))
	if err != nil {
		return nil, fmt.Errorf("schema não encontrado para o driver %q: %w", driver, err)
	}

	var statements []string
	for _, stmt := range strings.Split(string(content), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			statements = append(statements, stmt)
		}
	}

	return statements, nil
}

// Run aplica o schema. Todas as instruções são idempotentes (IF NOT EXISTS).
func Run(ctx context.Context, conn database.Conn) error {
	statements, err := Statements(conn.Driver())
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"driver":     conn.Driver(),
		"statements": len(statements),
	}).Info("Aplicando schema do banco de dados")

	if err := database.ExecScript(ctx, conn, statements); err != nil {
		return fmt.Errorf("erro ao aplicar schema: %w", err)
	}

	logrus.Info("Schema aplicado com sucesso")
	return nil
}
