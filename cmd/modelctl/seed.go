package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/business-model-api/internal/usecases/modeling"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Popula o modelo do usuário com os dados iniciais",
	Long:  "Popula o modelo do usuário com os dados iniciais. Usuários que já possuem linhas não são alterados.",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&flagOwner, "owner", 0, "ID do usuário")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	if err := requireOwner(); err != nil {
		return err
	}

	e, err := openModeler(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	err = e.modeler.Seed(cmd.Context(), flagOwner)
	if errors.Is(err, modeling.ErrAlreadySeeded) {
		fmt.Println(renderWarn(fmt.Sprintf("Usuário %d já possui dados, nada foi alterado", flagOwner)))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(renderOK(fmt.Sprintf("Modelo do usuário %d populado", flagOwner)))
	return nil
}
