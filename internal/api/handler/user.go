package handler

import (
	"net/http"

	"github.com/vfg2006/business-model-api/internal/domain"
	"github.com/vfg2006/business-model-api/internal/usecases/authenticating"
	"github.com/vfg2006/business-model-api/pkg/apiErrors"
	"github.com/vfg2006/business-model-api/pkg/middleware"
)

// GetUser retorna informações do usuário por ID
func GetUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := userIDParam(w, r)
		if !ok {
			return
		}

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok || (claims.UserID != id && claims.UserRoleID != authenticating.RoleAdmin) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para consultar este usuário", nil)
			return
		}

		user, err := service.GetUserProfile(id)
		if err != nil {
			writeAuthError(w, r, err, "Erro ao buscar usuário")
			return
		}

		if user == nil {
			apiErrors.WriteError(w, apiErrors.ErrUserNotFound, "Usuário não encontrado", nil)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// CreateUser cria um novo usuário; usado no cadastro público e pelo administrador
func CreateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user *domain.User

		if err := json.NewDecoder(r.Body).Decode(&user); err != nil || user == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if user.Name == "" || user.Email == "" || user.PasswordHash == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome, email e senha são obrigatórios", nil)
			return
		}

		// perfil só é escolhido por administradores
		if claims, ok := middleware.ClaimsFromContext(r.Context()); !ok || claims.UserRoleID != authenticating.RoleAdmin {
			user.RoleID = 0
		}

		created, err := service.CreateUser(user)
		if err != nil {
			writeAuthError(w, r, err, "Erro ao criar usuário")
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

// ListUsers lista todos os usuários
func ListUsers(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := service.ListUser()
		if err != nil {
			writeAuthError(w, r, err, "Erro ao buscar usuários")
			return
		}

		writeJSON(w, http.StatusOK, users)
	}
}

// UpdateUser atualiza informações do usuário
func UpdateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := userIDParam(w, r)
		if !ok {
			return
		}

		// o usuário pode editar apenas o próprio perfil, a menos que seja admin
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok || (claims.UserID != id && claims.UserRoleID != authenticating.RoleAdmin) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para editar este usuário", nil)
			return
		}

		var updateReq domain.UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		updateReq.ID = id

		if updateReq.RoleID != nil && claims.UserRoleID != authenticating.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem alterar o tipo de usuário", nil)
			return
		}

		if err := service.UpdateUser(&updateReq); err != nil {
			writeAuthError(w, r, err, "Erro ao atualizar usuário")
			return
		}

		writeJSON(w, http.StatusOK, nil)
	}
}
