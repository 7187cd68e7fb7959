package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/business-model-api/internal/config"
	"github.com/vfg2006/business-model-api/internal/usecases/modeling/mocks"
	"go.uber.org/mock/gomock"
)

func newMaintenanceConfig(reconcile bool) *config.Config {
	return &config.Config{
		Modeling: config.Modeling{SessionIdleTTL: 30 * time.Minute},
		ModelMaintenance: config.ModelMaintenance{
			CronSchedule:     "*/5 * * * *",
			Enabled:          true,
			ReconcileEnabled: reconcile,
		},
	}
}

func TestModelMaintenanceService_run(t *testing.T) {
	tests := []struct {
		name      string
		reconcile bool
		setup     func(modeler *mocks.MockModeler)
		expected  MaintenanceRun
	}{
		{
			name:      "grava pendências e descarta modelos ociosos",
			reconcile: false,
			setup: func(modeler *mocks.MockModeler) {
				gomock.InOrder(
					modeler.EXPECT().Flush(gomock.Any()).Return(nil),
					modeler.EXPECT().EvictIdle(gomock.Any(), 30*time.Minute).Return(2),
				)
			},
			expected: MaintenanceRun{Evicted: 2},
		},
		{
			name:      "reconcilia quando habilitado",
			reconcile: true,
			setup: func(modeler *mocks.MockModeler) {
				modeler.EXPECT().Flush(gomock.Any()).Return(nil)
				modeler.EXPECT().EvictIdle(gomock.Any(), gomock.Any()).Return(0)
				modeler.EXPECT().ReconcileAll(gomock.Any()).Return(7, nil)
			},
			expected: MaintenanceRun{Reconciled: 7},
		},
		{
			name:      "falhas são registradas sem interromper a execução",
			reconcile: true,
			setup: func(modeler *mocks.MockModeler) {
				modeler.EXPECT().Flush(gomock.Any()).Return(errors.New("conexão perdida"))
				modeler.EXPECT().EvictIdle(gomock.Any(), gomock.Any()).Return(1)
				modeler.EXPECT().ReconcileAll(gomock.Any()).Return(3, errors.New("usuário 9 falhou"))
			},
			expected: MaintenanceRun{Evicted: 1, Reconciled: 3, FlushError: "conexão perdida", Error: "usuário 9 falhou"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			modeler := mocks.NewMockModeler(ctrl)
			tt.setup(modeler)

			service := NewModelMaintenanceService(modeler, newMaintenanceConfig(tt.reconcile))
			result := service.run(context.Background())

			assert.Equal(t, tt.expected, result)

			status := service.GetStatus()
			assert.Equal(t, tt.expected, status["last_run"])
			assert.Equal(t, false, status["running"])
		})
	}
}

func TestModelMaintenanceService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := newMaintenanceConfig(false)
	cfg.ModelMaintenance.Enabled = false

	service := NewModelMaintenanceService(mocks.NewMockModeler(ctrl), cfg)
	assert.NoError(t, service.Start(context.Background()))
}

func TestModelMaintenanceService_StartInvalidCron(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := newMaintenanceConfig(false)
	cfg.ModelMaintenance.CronSchedule = "não é cron"

	service := NewModelMaintenanceService(mocks.NewMockModeler(ctrl), cfg)
	assert.Error(t, service.Start(context.Background()))
}
