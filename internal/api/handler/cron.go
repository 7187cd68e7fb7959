package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/business-model-api/internal/scheduler"
	"github.com/vfg2006/business-model-api/pkg/apiErrors"
	"github.com/vfg2006/business-model-api/pkg/log"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeModelMaintenance = "model-maintenance"
	CronJobTypeAll              = "all"
)

// CronJob é o contrato dos agendadores que podem ser disparados manualmente
type CronJob interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	ModelMaintenanceService CronJob
}

// NewCronJobServices evita o nil tipado quando a manutenção não foi criada
func NewCronJobServices(maintenance *scheduler.ModelMaintenanceService) CronJobServices {
	if maintenance == nil {
		return CronJobServices{}
	}
	return CronJobServices{ModelMaintenanceService: maintenance}
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeModelMaintenance, CronJobTypeAll:
			if services.ModelMaintenanceService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de manutenção de modelos não disponível", nil)
				return
			}
			services.ModelMaintenanceService.TriggerManualSync()
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: model-maintenance, all", nil)
			return
		}

		log.ForContext(r.Context()).WithField("type", cronType).Info("Cron job iniciada manualmente")

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.ModelMaintenanceService != nil {
			status[CronJobTypeModelMaintenance] = services.ModelMaintenanceService.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
