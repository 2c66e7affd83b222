package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/mysanvi/pkg/middleware"
)

type HealthcheckResponse struct {
	Status  string `json:"status"`
	Time    string `json:"time"`
	Session bool   `json:"session"`
}

func HealthcheckHandler(session middleware.SessionChecker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthcheckResponse{
			Status:  "ok",
			Time:    time.Now().Format(time.RFC3339),
			Session: session.HasValidSession(),
		})
	})
}
