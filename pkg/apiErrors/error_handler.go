package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro expostos pela API local
const (
	ErrAuthRequired      = "AUTH_001" // Sessão ausente
	ErrInvalidToken      = "AUTH_002" // Credencial rejeitada pelo backend
	ErrInvalidRequest    = "VAL_001"  // Requisição inválida
	ErrValidation        = "VAL_002"  // Falha de validação de formulário
	ErrNetwork           = "NET_001"  // Backend inacessível
	ErrUpstreamHTTP      = "HTTP_001" // Backend respondeu com erro
	ErrUpstreamDecode    = "DEC_001"  // Resposta do backend fora do schema
	ErrInternalServer    = "SRV_001"  // Erro interno
	ErrNotFound          = "SRV_002"  // Recurso local inexistente
	ErrScreenUnavailable = "SRV_003"  // Ação indisponível no estado atual da tela
)

var httpStatusMap = map[string]int{
	ErrAuthRequired:      http.StatusUnauthorized,
	ErrInvalidToken:      http.StatusUnauthorized,
	ErrInvalidRequest:    http.StatusBadRequest,
	ErrValidation:        http.StatusBadRequest,
	ErrNetwork:           http.StatusServiceUnavailable,
	ErrUpstreamHTTP:      http.StatusBadGateway,
	ErrUpstreamDecode:    http.StatusBadGateway,
	ErrInternalServer:    http.StatusInternalServerError,
	ErrNotFound:          http.StatusNotFound,
	ErrScreenUnavailable: http.StatusConflict,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// StatusFor retorna o status HTTP associado a um código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// CodeOf classifica um erro da taxonomia do cliente em um código da API
func CodeOf(err error) string {
	var (
		valErr *ValidationError
		decErr *DecodeError
	)

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAuthenticationRequired):
		return ErrAuthRequired
	case errors.Is(err, ErrInvalidState):
		return ErrScreenUnavailable
	case errors.As(err, &valErr):
		return ErrValidation
	case IsNetworkError(err):
		return ErrNetwork
	case errors.As(err, &decErr):
		return ErrUpstreamDecode
	}

	if httpErr, ok := AsHTTPError(err); ok {
		if httpErr.IsUnauthorized() {
			return ErrInvalidToken
		}
		return ErrUpstreamHTTP
	}

	return ErrInternalServer
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, action string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "unknown error",
		}
	}

	apiErr := APIError{
		Code:    CodeOf(err),
		Message: UserMessage(action, err),
	}

	if httpErr, ok := AsHTTPError(err); ok {
		apiErr.Details = map[string]any{"status": httpErr.StatusCode}
	}

	return apiErr
}

// WriteFromError escreve um erro Go como APIError
func WriteFromError(w http.ResponseWriter, err error, action string) {
	apiErr := FromError(err, action)
	WriteError(w, apiErr.Code, apiErr.Message, apiErr.Details)
}
