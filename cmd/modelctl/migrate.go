package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/business-model-api/infrastructure/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica o schema do banco configurado",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	e, err := openDB(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	if err := migration.Run(cmd.Context(), e.conn); err != nil {
		return err
	}

	fmt.Println(renderOK(fmt.Sprintf("Schema aplicado (%s)", e.conn.Driver())))
	return nil
}
