package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-model-api/internal/config"
	"github.com/vfg2006/business-model-api/internal/usecases/modeling"
)

// ModelMaintenanceConfig representa a configuração da manutenção periódica dos modelos
type ModelMaintenanceConfig struct {
	CronSchedule     string
	SessionIdleTTL   time.Duration
	Enabled          bool
	ReconcileEnabled bool
}

// MaintenanceRun é o resultado de uma execução da manutenção
type MaintenanceRun struct {
	Evicted    int    `json:"evicted"`
	Reconciled int    `json:"reconciled"`
	FlushError string `json:"flush_error,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ModelMaintenanceService grava pendências, descarta modelos ociosos e reconcilia campos derivados
type ModelMaintenanceService struct {
	scheduler       *gocron.Scheduler
	config          ModelMaintenanceConfig
	modeler         modeling.Modeler
	runRunning      bool
	runMutex        sync.Mutex
	lastRunStarted  time.Time
	lastRunFinished time.Time
	lastRun         MaintenanceRun
}

func NewModelMaintenanceService(modeler modeling.Modeler, appConfig *config.Config) *ModelMaintenanceService {
	maintenanceConfig := ModelMaintenanceConfig{
		CronSchedule:     appConfig.ModelMaintenance.CronSchedule,
		SessionIdleTTL:   appConfig.Modeling.SessionIdleTTL,
		Enabled:          appConfig.ModelMaintenance.Enabled,
		ReconcileEnabled: appConfig.ModelMaintenance.ReconcileEnabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":     maintenanceConfig.CronSchedule,
		"session_idle_ttl":  maintenanceConfig.SessionIdleTTL,
		"enabled":           maintenanceConfig.Enabled,
		"reconcile_enabled": maintenanceConfig.ReconcileEnabled,
	}).Info("Configuração da manutenção de modelos carregada")

	return &ModelMaintenanceService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    maintenanceConfig,
		modeler:   modeler,
	}
}

// Start inicia o agendador
func (s *ModelMaintenanceService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Manutenção de modelos desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de manutenção de modelos")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.run(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar manutenção de modelos: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de manutenção de modelos")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *ModelMaintenanceService) run(ctx context.Context) MaintenanceRun {
	s.runMutex.Lock()
	if s.runRunning {
		s.runMutex.Unlock()
		logrus.Info("Manutenção de modelos já em andamento, ignorando")
		return MaintenanceRun{}
	}
	s.runRunning = true
	s.lastRunStarted = time.Now()
	s.runMutex.Unlock()

	defer func() {
		s.runMutex.Lock()
		s.runRunning = false
		s.runMutex.Unlock()
	}()

	var result MaintenanceRun

	if err := s.modeler.Flush(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao gravar alterações pendentes")
		result.FlushError = err.Error()
	}

	if s.config.SessionIdleTTL > 0 {
		result.Evicted = s.modeler.EvictIdle(ctx, s.config.SessionIdleTTL)
	}

	if s.config.ReconcileEnabled {
		reconciled, err := s.modeler.ReconcileAll(ctx)
		if err != nil {
			logrus.WithError(err).Error("Erro ao reconciliar modelos")
			result.Error = err.Error()
		}
		result.Reconciled = reconciled
	}

	logrus.WithFields(logrus.Fields{
		"evicted":    result.Evicted,
		"reconciled": result.Reconciled,
		"duration":   time.Since(s.lastRunStarted).String(),
	}).Info("Manutenção de modelos concluída")

	s.runMutex.Lock()
	s.lastRunFinished = time.Now()
	s.lastRun = result
	s.runMutex.Unlock()

	return result
}

// TriggerManualSync inicia manualmente uma manutenção de modelos
func (s *ModelMaintenanceService) TriggerManualSync() {
	s.runMutex.Lock()
	if s.runRunning {
		s.runMutex.Unlock()
		logrus.Info("Manutenção de modelos já em andamento, ignorando solicitação manual")
		return
	}
	s.runMutex.Unlock()

	logrus.Info("Iniciando manutenção manual de modelos")
	go s.run(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *ModelMaintenanceService) GetStatus() map[string]any {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	return map[string]any{
		"enabled":           s.config.Enabled,
		"cron":              s.config.CronSchedule,
		"session_idle_ttl":  s.config.SessionIdleTTL.String(),
		"reconcile_enabled": s.config.ReconcileEnabled,
		"running":           s.runRunning,
		"last_run_started":  s.lastRunStarted,
		"last_run_finished": s.lastRunFinished,
		"last_run":          s.lastRun,
	}
}
