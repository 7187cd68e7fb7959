package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagAll bool

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Recalcula e regrava campos derivados defasados",
	RunE:  runReconcile,
}

func init() {
	reconcileCmd.Flags().IntVar(&flagOwner, "owner", 0, "ID do usuário")
	reconcileCmd.Flags().BoolVar(&flagAll, "all", false, "Reconcilia todos os usuários")
	reconcileCmd.MarkFlagsMutuallyExclusive("owner", "all")
	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	if !flagAll {
		if err := requireOwner(); err != nil {
			return fmt.Errorf("%w (ou --all)", err)
		}
	}

	e, err := openModeler(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	if flagAll {
		reconciled, err := e.modeler.ReconcileAll(cmd.Context())
		fmt.Println(renderOK(fmt.Sprintf("%d registros regravados", reconciled)))
		return err
	}

	reconciled, err := e.modeler.Reconcile(cmd.Context(), flagOwner)
	if err != nil {
		return err
	}

	fmt.Println(renderOK(fmt.Sprintf("%d registros regravados para o usuário %d", reconciled, flagOwner)))
	return nil
}
