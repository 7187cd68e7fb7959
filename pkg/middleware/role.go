package middleware

import (
	"net/http"

	"github.com/vfg2006/business-model-api/internal/usecases/authenticating"
	"github.com/vfg2006/business-model-api/pkg/apiErrors"
	"github.com/vfg2006/business-model-api/pkg/log"
)

// RequireRoles libera a rota apenas para os perfis informados.
// Roda depois do AuthMiddleware, que coloca as claims no contexto.
func RequireRoles(roles ...int) func(http.Handler) http.Handler {
	allowed := make(map[int]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				log.ForContext(r.Context()).WithField("path", r.URL.Path).Warn("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			if _, ok := allowed[claims.UserRoleID]; !ok {
				log.ForContext(r.Context()).WithFields(log.Fields{
					"path":         r.URL.Path,
					"user_role_id": claims.UserRoleID,
				}).Warn("Acesso negado para o perfil do usuário")
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", map[string]any{
					"role_id": claims.UserRoleID,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly protege o agregado da plataforma e a gestão de usuários
func AdminOnly() func(http.Handler) http.Handler {
	return RequireRoles(authenticating.RoleAdmin)
}

// AdminOrSupervisor protege o disparo manual e o status dos jobs de manutenção
func AdminOrSupervisor() func(http.Handler) http.Handler {
	return RequireRoles(authenticating.RoleAdmin, authenticating.RoleSupervisor)
}

// AnyRole exige apenas um usuário autenticado com perfil conhecido
func AnyRole() func(http.Handler) http.Handler {
	return RequireRoles(authenticating.RoleAdmin, authenticating.RoleSupervisor, authenticating.RoleUser)
}
