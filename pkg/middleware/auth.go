package middleware

import (
	"net/http"

	"github.com/vfg2006/mysanvi/pkg/apiErrors"
)

// SessionChecker é o suficiente da sessão para decidir se a rota pode seguir
type SessionChecker interface {
	HasValidSession() bool
}

// RequireSession bloqueia rotas de telas autenticadas enquanto não houver credencial
func RequireSession(session SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !session.HasValidSession() {
				apiErrors.WriteError(w, apiErrors.ErrAuthRequired, apiErrors.MsgNoAuthToken, nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
