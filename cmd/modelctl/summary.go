package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/business-model-api/pkg/utils"
)

var flagJSON bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Exibe o resumo do modelo do usuário",
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().IntVar(&flagOwner, "owner", 0, "ID do usuário")
	summaryCmd.Flags().BoolVar(&flagJSON, "json", false, "Imprime o resumo em JSON")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	if err := requireOwner(); err != nil {
		return err
	}

	e, err := openModeler(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	summary, err := e.modeler.GetSummary(cmd.Context(), flagOwner)
	if err != nil {
		return err
	}

	if flagJSON {
		fmt.Println(utils.PrettyJson(summary))
		return nil
	}

	fmt.Println()
	fmt.Println(renderSummary(flagOwner, summary))
	fmt.Println()
	return nil
}
