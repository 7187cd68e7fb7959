package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/business-model-api/internal/domain"
	"github.com/vfg2006/business-model-api/internal/usecases/modeling"
	"github.com/vfg2006/business-model-api/pkg/apiErrors"
	"github.com/vfg2006/business-model-api/pkg/log"
)

// Ações aceitas nas rotas do modelo que compartilham o segmento :kind
const (
	modelActionSummary    = "summary"
	modelActionSeed       = "seed"
	modelActionReconcile  = "reconcile"
	modelActionSyncFunnel = "sync-funnel"
)

// AddRowRequest traz os valores iniciais da nova linha, como digitados
type AddRowRequest struct {
	Values map[string]any `json:"values"`
}

// EditFieldRequest altera um campo de entrada de um registro
type EditFieldRequest struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

type ReconcileResponse struct {
	Reconciled int `json:"reconciled"`
}

// rawValue devolve o texto digitado; números e booleanos chegam como JSON e viram texto
func rawValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// writeModelError traduz erros do modelo para o envelope da API
func writeModelError(w http.ResponseWriter, r *http.Request, err error) {
	var modelErr *modeling.ModelError
	if errors.As(err, &modelErr) {
		logger := log.ForContext(r.Context()).WithFields(log.Fields{
			"kind":      modelErr.Kind,
			"record_id": modelErr.RecordID,
		})
		if modeling.IsEditError(err) {
			logger.WithError(err).Warn("Edição rejeitada")
		} else {
			logger.WithError(err).Error("Erro no modelo financeiro")
		}

		var details map[string]any
		if modelErr.Kind != "" || modelErr.RecordID != "" {
			details = map[string]any{"kind": modelErr.Kind, "id": modelErr.RecordID}
		}
		apiErrors.WriteError(w, modelErr.Code, modelErr.Error(), details)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("Erro inesperado no modelo financeiro")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar o modelo", nil)
}

// GetModel retorna o snapshot completo do usuário com o resumo calculado
func GetModel(service modeling.Modeler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := ownerFromRequest(w, r)
		if !ok {
			return
		}

		response, err := service.GetModel(r.Context(), ownerID)
		if err != nil {
			writeModelError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, response)
	}
}

// GetModelSection retorna o resumo ou as linhas de uma coleção
func GetModelSection(service modeling.Modeler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := ownerFromRequest(w, r)
		if !ok {
			return
		}

		kind := httprouter.ParamsFromContext(r.Context()).ByName("kind")

		if kind == modelActionSummary {
			summary, err := service.GetSummary(r.Context(), ownerID)
			if err != nil {
				writeModelError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, summary)
			return
		}

		records, err := service.ListRecords(r.Context(), ownerID, domain.EntityKind(kind))
		if err != nil {
			writeModelError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, records)
	}
}

// PostModelSection inclui uma linha na coleção ou executa seed/reconcile
func PostModelSection(service modeling.Modeler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := ownerFromRequest(w, r)
		if !ok {
			return
		}

		kind := httprouter.ParamsFromContext(r.Context()).ByName("kind")

		switch kind {
		case modelActionSeed:
			if err := service.Seed(r.Context(), ownerID); err != nil {
				writeModelError(w, r, err)
				return
			}

			response, err := service.GetModel(r.Context(), ownerID)
			if err != nil {
				writeModelError(w, r, err)
				return
			}
			writeJSON(w, http.StatusCreated, response)
			return

		case modelActionReconcile:
			reconciled, err := service.Reconcile(r.Context(), ownerID)
			if err != nil {
				writeModelError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, ReconcileResponse{Reconciled: reconciled})
			return
		}

		var req AddRowRequest
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
				return
			}
		}

		values := make(map[string]string, len(req.Values))
		for field, value := range req.Values {
			values[field] = rawValue(value)
		}

		response, err := service.Apply(r.Context(), ownerID, modeling.AddRow{
			Kind:   domain.EntityKind(kind),
			Values: values,
		})
		if err != nil {
			writeModelError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, response)
	}
}

// EditModelField altera um campo de entrada e devolve o modelo recalculado
func EditModelField(service modeling.Modeler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := ownerFromRequest(w, r)
		if !ok {
			return
		}

		params := httprouter.ParamsFromContext(r.Context())

		var req EditFieldRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if req.Field == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo é obrigatório", nil)
			return
		}

		response, err := service.Apply(r.Context(), ownerID, modeling.EditField{
			Kind:  domain.EntityKind(params.ByName("kind")),
			ID:    params.ByName("id"),
			Field: req.Field,
			Value: rawValue(req.Value),
		})
		if err != nil {
			writeModelError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, response)
	}
}

// DeleteModelRow exclui uma linha e devolve o modelo recalculado
func DeleteModelRow(service modeling.Modeler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := ownerFromRequest(w, r)
		if !ok {
			return
		}

		params := httprouter.ParamsFromContext(r.Context())

		response, err := service.Apply(r.Context(), ownerID, modeling.DeleteRow{
			Kind: domain.EntityKind(params.ByName("kind")),
			ID:   params.ByName("id"),
		})
		if err != nil {
			writeModelError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, response)
	}
}

// RunModelAction executa ações sobre uma coleção inteira (hoje apenas sync-funnel de assinantes)
func RunModelAction(service modeling.Modeler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := ownerFromRequest(w, r)
		if !ok {
			return
		}

		params := httprouter.ParamsFromContext(r.Context())
		kind, action := domain.EntityKind(params.ByName("kind")), params.ByName("action")

		if kind != domain.KindActiveSubscribers || action != modelActionSyncFunnel {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Ação inválida", map[string]any{
				"kind":   kind,
				"action": action,
			})
			return
		}

		response, err := service.Apply(r.Context(), ownerID, modeling.SyncFunnel{})
		if err != nil {
			writeModelError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, response)
	}
}

// GetPlatformAggregate retorna os números consolidados de todos os usuários
func GetPlatformAggregate(service modeling.Modeler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		aggregate, err := service.PlatformAggregate(r.Context())
		if err != nil {
			writeModelError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, aggregate)
	}
}
