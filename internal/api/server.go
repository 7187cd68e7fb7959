package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-model-api/internal/api/handler"
	"github.com/vfg2006/business-model-api/internal/api/handler/router"
	"github.com/vfg2006/business-model-api/internal/config"
	"github.com/vfg2006/business-model-api/internal/scheduler"
	"github.com/vfg2006/business-model-api/internal/usecases/authenticating"
	"github.com/vfg2006/business-model-api/internal/usecases/modeling"
	"github.com/vfg2006/business-model-api/pkg/metrics"
	"github.com/vfg2006/business-model-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
	modeler    modeling.Modeler
}

func New(
	config *config.Config,
	db handler.Pinger,
	modeler modeling.Modeler,
	authenticator authenticating.Authenticator,
	maintenance *scheduler.ModelMaintenanceService,
	registry *metrics.Registry,
) (*Server, error) {
	rt := router.New(
		router.WithInstrumentation(func(method, path string) func(http.Handler) http.Handler {
			return middleware.Metrics(registry, method, path)
		}),
		router.WithRoutes(handler.Healthcheck(db)...),
		router.WithRoutes(handler.Metrics(registry.Handler())...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.User(authenticator)...),
		router.WithRoutes(handler.Model(modeler)...),
		router.WithRoutes(handler.Admin(modeler)...),
		router.WithRoutes(handler.CronJobs(handler.NewCronJobServices(maintenance))...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.CORSAllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
		modeler: modeler,
	}

	return srv, nil
}

// Handler expõe a cadeia completa de middlewares e rotas
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

// Shutdown para de aceitar requisições e grava as edições ainda pendentes
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")

	if s.modeler != nil {
		if err := s.modeler.Flush(ctx); err != nil {
			logrus.WithError(err).Error("Erro ao gravar alterações pendentes no desligamento")
			return err
		}
		logrus.Info("Alterações pendentes gravadas")
	}

	return nil
}
