package authenticating

import (
	"errors"
	"fmt"

	"github.com/vfg2006/business-model-api/pkg/apiErrors"
)

var (
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrUserDisabled       = errors.New("usuário desativado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrUserAlreadyExists  = errors.New("usuário já existe")
	ErrInvalidToken       = errors.New("token inválido")
	ErrExpiredToken       = errors.New("token expirado")
	ErrNoAdminPrivileges  = errors.New("apenas administradores podem realizar esta ação")

	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")
	ErrWeakPassword        = errors.New("senha fraca")
	ErrSamePassword        = errors.New("nova senha deve ser diferente da atual")

	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
	ErrTokenGeneration   = errors.New("erro ao gerar token de autenticação")
)

// errorCodes associa cada erro de autenticação ao código devolvido pela API
var errorCodes = map[error]string{
	ErrInvalidCredentials:  apiErrors.ErrInvalidCredentials,
	ErrUserDisabled:        apiErrors.ErrUserDisabled,
	ErrUserNotFound:        apiErrors.ErrUserNotFound,
	ErrUserAlreadyExists:   apiErrors.ErrUserAlreadyExists,
	ErrInvalidToken:        apiErrors.ErrInvalidToken,
	ErrExpiredToken:        apiErrors.ErrExpiredToken,
	ErrNoAdminPrivileges:   apiErrors.ErrInsufficientPrivilege,
	ErrMissingRequiredData: apiErrors.ErrMissingRequiredData,
	ErrWeakPassword:        apiErrors.ErrInvalidFormat,
	ErrSamePassword:        apiErrors.ErrInvalidRequest,
	ErrDatabaseOperation:   apiErrors.ErrDatabaseOperation,
	ErrTokenGeneration:     apiErrors.ErrInternalServer,
}

// AuthError carrega o código da API e o usuário envolvido.
// Cause guarda a falha de infraestrutura por trás de Err; ela vai para o log, nunca para a resposta.
type AuthError struct {
	Err     error
	Cause   error
	Code    string
	UserID  int
	Details string
}

func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AuthError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// LogError devolve o erro completo, com a causa, para registro
func (e *AuthError) LogError() error {
	if e.Cause == nil {
		return e
	}
	return fmt.Errorf("%w: %v", e, e.Cause)
}

// CodeFor devolve o código da API de um erro de autenticação; erros desconhecidos viram erro interno
func CodeFor(err error) string {
	for base, code := range errorCodes {
		if errors.Is(err, base) {
			return code
		}
	}
	return apiErrors.ErrInternalServer
}

// NewAuthError cria o erro com o código associado a base
func NewAuthError(base error, details string) *AuthError {
	return NewUserAuthError(base, 0, details)
}

func NewUserAuthError(base error, userID int, details string) *AuthError {
	return &AuthError{
		Err:     base,
		Code:    CodeFor(base),
		UserID:  userID,
		Details: details,
	}
}

// wrapAuthError registra cause como origem de base
func wrapAuthError(base, cause error, userID int, details string) *AuthError {
	authErr := NewUserAuthError(base, userID, details)
	authErr.Cause = cause
	return authErr
}

func newDatabaseError(cause error, userID int, details string) *AuthError {
	return wrapAuthError(ErrDatabaseOperation, cause, userID, details)
}
