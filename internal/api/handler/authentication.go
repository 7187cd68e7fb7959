package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/business-model-api/internal/usecases/authenticating"
	"github.com/vfg2006/business-model-api/pkg/apiErrors"
	"github.com/vfg2006/business-model-api/pkg/log"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type GeneratePasswordResponse struct {
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// writeAuthError traduz erros de autenticação; fallbackMessage vale para erros sem código
func writeAuthError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		log.ForContext(r.Context()).WithField("user_id", authErr.UserID).WithError(authErr.LogError()).Warn(fallbackMessage)

		var details map[string]any
		if authErr.UserID != 0 {
			details = map[string]any{"user_id": authErr.UserID}
		}
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), details)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error(fallbackMessage)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallbackMessage, nil)
}

// userIDParam lê o :id da rota; responde 400 quando inválido
func userIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if idStr == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do usuário não fornecido", nil)
		return 0, false
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do usuário inválido", nil)
		return 0, false
	}

	return id, true
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		token, err := service.LoginUser(req.Email, req.Password)
		if err != nil {
			writeAuthError(w, r, err, "Erro interno ao realizar login")
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{Token: token})
	}
}

// GetMe retorna as informações do usuário logado
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := ownerFromRequest(w, r)
		if !ok {
			return
		}

		user, err := service.GetUserProfile(userID)
		if err != nil {
			writeAuthError(w, r, err, "Erro ao obter dados do usuário")
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// ChangePassword permite que o usuário altere a própria senha
func ChangePassword(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetUserID, ok := userIDParam(w, r)
		if !ok {
			return
		}

		userID, ok := ownerFromRequest(w, r)
		if !ok {
			return
		}

		var req ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if userID != targetUserID {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Não autorizado a alterar a senha de outro usuário", nil)
			return
		}

		if err := service.ChangePassword(targetUserID, req.CurrentPassword, req.NewPassword); err != nil {
			writeAuthError(w, r, err, "Erro ao alterar senha")
			return
		}

		writeJSON(w, http.StatusOK, nil)
	}
}

// GeneratePassword gera uma senha forte para outro usuário (somente administradores)
func GeneratePassword(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestUserID, ok := ownerFromRequest(w, r)
		if !ok {
			return
		}

		targetUserID, ok := userIDParam(w, r)
		if !ok {
			return
		}

		newPassword, err := service.GenerateStrongPassword(requestUserID, targetUserID)
		if err != nil {
			writeAuthError(w, r, err, "Erro ao gerar senha")
			return
		}

		log.ForContext(r.Context()).WithField("user_id", targetUserID).Info("Nova senha gerada")
		writeJSON(w, http.StatusOK, GeneratePasswordResponse{Password: newPassword})
	}
}
