package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/business-model-api/pkg/apiErrors"
	"github.com/vfg2006/business-model-api/pkg/log"
	"github.com/vfg2006/business-model-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.L.WithError(err).Error("Erro ao enviar resposta")
	}
}

// ownerFromRequest obtém o usuário autenticado; responde 401 quando ausente
func ownerFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return 0, false
	}
	return claims.UserID, true
}
