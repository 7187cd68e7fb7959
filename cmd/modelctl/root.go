package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vfg2006/business-model-api/infrastructure/database"
	"github.com/vfg2006/business-model-api/infrastructure/database/connector"
	"github.com/vfg2006/business-model-api/infrastructure/repository"
	"github.com/vfg2006/business-model-api/internal/config"
	"github.com/vfg2006/business-model-api/internal/usecases/modeling"
	"github.com/vfg2006/business-model-api/internal/usecases/seeding"
	"github.com/vfg2006/business-model-api/pkg/log"
	"github.com/vfg2006/business-model-api/pkg/metrics"
)

var (
	flagOwner   int
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "modelctl",
	Short:         "Administração do modelo financeiro",
	Long:          "Aplica o schema, popula e reconcilia os modelos financeiros direto no banco configurado (.env / variáveis de ambiente).",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		level := "warn"
		if flagVerbose {
			level = "debug"
		}
		log.Setup(level)
	},
}

// Execute é o ponto de entrada chamado por main
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Exibe os logs da aplicação")
}

// env reúne as dependências abertas por um comando
type env struct {
	cfg     *config.Config
	conn    database.Conn
	modeler *modeling.Service
}

func (e *env) Close() {
	if e.conn != nil {
		e.conn.Close()
	}
}

// openDB carrega a configuração e abre a conexão do driver configurado
func openDB(ctx context.Context) (*env, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar configuração: %w", err)
	}

	conn, err := connector.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar ao banco de dados: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("banco de dados não responde: %w", err)
	}

	return &env{cfg: cfg, conn: conn}, nil
}

// openModeler monta o serviço de modelagem gravando cada alteração na hora
func openModeler(ctx context.Context) (*env, error) {
	e, err := openDB(ctx)
	if err != nil {
		return nil, err
	}

	seeder, err := seeding.NewSeeder()
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("erro ao carregar dados iniciais: %w", err)
	}

	modelingCfg := e.cfg.Modeling
	modelingCfg.DebounceInterval = 0
	modelingCfg.SeedOnFirstLoad = false

	e.modeler = modeling.NewService(repository.NewModelRepository(e.conn), seeder, metrics.New(), modelingCfg)
	return e, nil
}

func requireOwner() error {
	if flagOwner <= 0 {
		return fmt.Errorf("informe o usuário com --owner")
	}
	return nil
}
