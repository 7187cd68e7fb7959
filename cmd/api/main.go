package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-model-api/infrastructure/database"
	"github.com/vfg2006/business-model-api/infrastructure/database/connector"
	"github.com/vfg2006/business-model-api/infrastructure/migration"
	"github.com/vfg2006/business-model-api/infrastructure/repository"
	"github.com/vfg2006/business-model-api/internal/api"
	"github.com/vfg2006/business-model-api/internal/config"
	"github.com/vfg2006/business-model-api/internal/scheduler"
	"github.com/vfg2006/business-model-api/internal/usecases/authenticating"
	"github.com/vfg2006/business-model-api/internal/usecases/modeling"
	"github.com/vfg2006/business-model-api/internal/usecases/seeding"
	"github.com/vfg2006/business-model-api/pkg/log"
	"github.com/vfg2006/business-model-api/pkg/metrics"
)

func main() {
	chdirToSource()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel := log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn := dbconn(ctx, cfg.Database)
	defer conn.Close()

	if err := migration.Run(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar schema")
	}

	userRepo := repository.NewUserRepository(conn)
	modelRepo := repository.NewModelRepository(conn)

	authenticator := authenticating.NewService(userRepo, cfg)

	seeder, err := seeding.NewSeeder()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar dados iniciais do modelo")
	}

	registry := metrics.New()
	modeler := modeling.NewService(modelRepo, seeder, registry, cfg.Modeling)

	maintenanceService := scheduler.NewModelMaintenanceService(modeler, cfg)
	if err := maintenanceService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de manutenção de modelos")
	} else {
		logrus.Info("Agendador de manutenção de modelos iniciado com sucesso")
	}

	server, err := api.New(cfg, conn, modeler, authenticator, maintenanceService, registry)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// chdirToSource permite achar o .env ao rodar com go run a partir de qualquer diretório
func chdirToSource() {
	_, file, _, _ := runtime.Caller(0)
	os.Chdir(path.Dir(file))
}

// dbconn abre a conexão do driver configurado e confirma que o banco responde
func dbconn(ctx context.Context, dbConfig config.Database) database.Conn {
	conn, err := connector.Open(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).WithField("driver", dbConfig.Driver).Fatal("Erro ao conectar ao banco de dados")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).WithField("driver", dbConfig.Driver).Fatal("Erro ao testar conexão com o banco de dados")
	}

	logrus.WithField("driver", dbConfig.Driver).Info("Conexão com o banco de dados estabelecida com sucesso")
	return conn
}
