package handler

import (
	"net/http"

	"github.com/vfg2006/mysanvi/internal/usecases/community"
)

type URLRequest struct {
	URL string `json:"url"`
}

type PageFinishedRequest struct {
	Title string `json:"title"`
}

type LoadFailedRequest struct {
	Description string `json:"description"`
}

type BackResponse struct {
	Action community.BackAction   `json:"action"`
	State  community.WebViewState `json:"state"`
}

func OpenWebView(service *community.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req URLRequest
		if !decodeBody(w, r, &req) {
			return
		}
		state, err := service.Open(req.URL)
		respondWebView(w, state, err)
	}
}

func WebViewState(service *community.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.State())
	}
}

// NavigateWebView responde se o navegador embutido pode seguir para o endereço
func NavigateWebView(service *community.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req URLRequest
		if !decodeBody(w, r, &req) {
			return
		}
		decision, err := service.Navigate(req.URL)
		if err != nil {
			writeScreenError(w, err, "", nil)
			return
		}
		writeJSON(w, http.StatusOK, decision)
	}
}

func PageStarted(service *community.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req URLRequest
		if !decodeBody(w, r, &req) {
			return
		}
		state, err := service.PageStarted(req.URL)
		respondWebView(w, state, err)
	}
}

func PageFinished(service *community.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PageFinishedRequest
		if !decodeBody(w, r, &req) {
			return
		}
		state, err := service.PageFinished(req.Title)
		respondWebView(w, state, err)
	}
}

func PageLoadFailed(service *community.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoadFailedRequest
		if !decodeBody(w, r, &req) {
			return
		}
		state, err := service.LoadFailed(req.Description)
		respondWebView(w, state, err)
	}
}

func RetryWebView(service *community.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := service.Retry()
		respondWebView(w, state, err)
	}
}

func ReloadWebView(service *community.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := service.Reload()
		respondWebView(w, state, err)
	}
}

func BackWebView(service *community.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		action := service.Back()
		writeJSON(w, http.StatusOK, BackResponse{Action: action, State: service.State()})
	}
}

func respondWebView(w http.ResponseWriter, state community.WebViewState, err error) {
	if err != nil {
		writeScreenError(w, err, "", state)
		return
	}
	writeJSON(w, http.StatusOK, state)
}
