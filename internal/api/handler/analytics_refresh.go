package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/mysanvi/internal/scheduler"
)

type RefreshStatusResponse struct {
	Enabled       bool    `json:"enabled"`
	Refreshed     *bool   `json:"refreshed,omitempty"`
	LastRefreshAt *string `json:"last_refresh_at,omitempty"`
}

// RunAnalyticsRefresh executa manualmente a atualização agendada da aba Analytics
func RunAnalyticsRefresh(service *scheduler.SummaryRefreshService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunAnalyticsRefresh")

		refreshed := service.TriggerManualRefresh(r.Context())
		resp := refreshStatus(service)
		resp.Refreshed = &refreshed
		writeJSON(w, http.StatusOK, resp)
	}
}

func AnalyticsRefreshStatus(service *scheduler.SummaryRefreshService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, refreshStatus(service))
	}
}

func refreshStatus(service *scheduler.SummaryRefreshService) RefreshStatusResponse {
	resp := RefreshStatusResponse{Enabled: service.Enabled()}
	if last := service.LastRefreshAt(); !last.IsZero() {
		formatted := last.Format(time.RFC3339)
		resp.LastRefreshAt = &formatted
	}
	return resp
}
