package handler

import (
	"net/http"

	"github.com/vfg2006/mysanvi/internal/usecases/authenticating"
	"github.com/vfg2006/mysanvi/internal/usecases/community"
	"github.com/vfg2006/mysanvi/internal/usecases/dashboard"
	"github.com/vfg2006/mysanvi/pkg/apiErrors"
)

type CommunityResponse struct {
	Destination dashboard.Destination  `json:"destination"`
	WebView     *community.WebViewState `json:"web_view,omitempty"`
}

// EnterDashboard abre o dashboard com o status produzido pelo login
func EnterDashboard(login authenticating.Authenticator, service *dashboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := login.State()
		if state.Step != authenticating.StepAuthenticated || state.UserStatus == nil {
			apiErrors.WriteError(w, apiErrors.ErrScreenUnavailable, "Log in before opening the dashboard", nil)
			return
		}
		writeJSON(w, http.StatusOK, service.Enter(*state.UserStatus))
	}
}

func DashboardState(service *dashboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.State())
	}
}

func LeaveDashboard(service *dashboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service.Leave()
		w.WriteHeader(http.StatusNoContent)
	}
}

// OpenCommunity resolve o destino da comunidade e já abre o navegador embutido nele
func OpenCommunity(service *dashboard.Service, webView *community.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dest, err := service.OpenCommunity(r.Context())
		if err != nil {
			writeScreenError(w, err, "", nil)
			return
		}

		resp := CommunityResponse{Destination: dest}
		if dest.Kind == dashboard.DestinationWebView {
			state, err := webView.Open(dest.URL)
			if err != nil {
				writeScreenError(w, err, "", resp)
				return
			}
			resp.WebView = &state
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func OpenPrimary(service *dashboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.OpenPrimary())
	}
}
