package modeling

import (
	"errors"
	"fmt"

	"github.com/vfg2006/business-model-api/internal/domain"
	"github.com/vfg2006/business-model-api/pkg/apiErrors"
)

// Erros específicos do modelo financeiro
var (
	// Erros de edição
	ErrUnknownKind    = errors.New("coleção desconhecida")
	ErrUnknownField   = errors.New("campo desconhecido")
	ErrDerivedField   = errors.New("campo calculado não pode ser editado")
	ErrRecordNotFound = errors.New("registro não encontrado")
	ErrUnknownEdit    = errors.New("edição desconhecida")

	// Erros de persistência
	ErrAlreadySeeded     = errors.New("modelo já possui dados")
	ErrPersistenceFailed = errors.New("erro ao persistir alterações")
	ErrLoadModel         = errors.New("erro ao carregar modelo")
)

// ModelError é um erro com contexto adicional para o modelo financeiro
type ModelError struct {
	Err      error             // Erro base
	Code     string            // Código de erro para API
	Kind     domain.EntityKind // Coleção envolvida (quando aplicável)
	RecordID string            // ID do registro envolvido (quando aplicável)
	Details  string            // Detalhes adicionais
}

// Error implementa a interface error
func (e *ModelError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError cria um novo ModelError
func NewModelError(err error, code string, details string) *ModelError {
	return &ModelError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewRecordError cria um novo ModelError com o registro envolvido
func NewRecordError(err error, kind domain.EntityKind, recordID string, details string) *ModelError {
	return &ModelError{
		Err:      err,
		Code:     codeFor(err),
		Kind:     kind,
		RecordID: recordID,
		Details:  details,
	}
}

// IsEditError verifica se o erro foi causado pela edição enviada e não pelo servidor
func IsEditError(err error) bool {
	return errors.Is(err, ErrUnknownKind) ||
		errors.Is(err, ErrUnknownField) ||
		errors.Is(err, ErrDerivedField) ||
		errors.Is(err, ErrRecordNotFound) ||
		errors.Is(err, ErrUnknownEdit)
}

func codeFor(err error) string {
	switch {
	case errors.Is(err, ErrUnknownKind):
		return apiErrors.ErrUnknownKind
	case errors.Is(err, ErrUnknownField):
		return apiErrors.ErrUnknownField
	case errors.Is(err, ErrDerivedField):
		return apiErrors.ErrDerivedField
	case errors.Is(err, ErrRecordNotFound):
		return apiErrors.ErrRecordNotFound
	case errors.Is(err, ErrUnknownEdit):
		return apiErrors.ErrInvalidRequest
	case errors.Is(err, ErrAlreadySeeded):
		return apiErrors.ErrAlreadySeeded
	case errors.Is(err, ErrPersistenceFailed):
		return apiErrors.ErrPersistenceLost
	default:
		return apiErrors.ErrDatabaseOperation
	}
}
