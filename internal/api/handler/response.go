package handler

import (
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/mysanvi/internal/api/handler/router"
	"github.com/vfg2006/mysanvi/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Warn("error encoding response")
	}
}

// decodeBody lê o corpo JSON; em caso de falha já respondeu VAL_001
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
		return false
	}
	return true
}

// writeScreenError responde com o código do erro e a mensagem que a tela exibe.
// Sem mensagem da tela, usa o texto do próprio erro.
func writeScreenError(w http.ResponseWriter, err error, message string, state any) {
	if message == "" {
		message = apiErrors.UserMessage("", err)
	}
	apiErrors.WriteError(w, apiErrors.CodeOf(err), message, state)
}

func idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(router.Param(r, "id"))
	if err != nil || id <= 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid id", nil)
		return 0, false
	}
	return id, true
}
