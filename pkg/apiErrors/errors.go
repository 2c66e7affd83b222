package apiErrors

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

var (
	// ErrAuthenticationRequired indica uma operação tentada sem credencial válida.
	// Nenhuma requisição de rede é feita quando este erro é retornado.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrMissingRequiredData é a base de todos os ValidationError
	ErrMissingRequiredData = errors.New("invalid input")

	// ErrInvalidState indica uma ação que a tela não aceita no estado atual
	ErrInvalidState = errors.New("action not available in the current state")
)

// NetworkError representa uma chamada em que nenhuma resposta foi recebida
type NetworkError struct {
	Op  string // Operação do gateway, ex: "sager.send_otp"
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error calling %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError representa uma resposta não-2xx recebida do backend
type HTTPError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: http %d: %s", e.Op, e.StatusCode, e.Message)
}

// IsUnauthorized indica que o backend rejeitou a credencial
func (e *HTTPError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// ValidationError é uma falha de validação local, anterior a qualquer chamada de rede
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrMissingRequiredData
}

// NewValidationError cria um ValidationError para o campo informado
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DecodeError indica que o corpo da resposta não corresponde ao schema esperado
type DecodeError struct {
	Op     string
	Target string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decoding %s: %v", e.Op, e.Target, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsNetworkError verifica se nenhuma resposta foi recebida
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// AsHTTPError extrai o HTTPError da cadeia, se existir
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// IsValidationError verifica se o erro é de validação local
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// MsgNoAuthToken é exibido sem prefixo quando não há sessão
const MsgNoAuthToken = "No authentication token found"

// UserMessage produz o texto exibido ao usuário, prefixado pela ação que falhou.
// Erros de validação e de sessão ausente são exibidos sem prefixo.
func UserMessage(action string, err error) string {
	if err == nil {
		return ""
	}

	var (
		valErr *ValidationError
		decErr *DecodeError
		netErr *NetworkError
	)

	var reason string
	switch {
	case errors.Is(err, ErrAuthenticationRequired):
		return MsgNoAuthToken
	case errors.As(err, &valErr):
		return valErr.Message
	case errors.As(err, &netErr):
		reason = "could not reach the server"
	case errors.As(err, &decErr):
		reason = "unexpected response from the server"
	default:
		if httpErr, ok := AsHTTPError(err); ok {
			reason = httpErr.Message
		} else {
			reason = err.Error()
		}
	}

	if action == "" {
		return reason
	}
	return fmt.Sprintf("%s: %s", action, reason)
}
