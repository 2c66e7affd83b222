package handler

import (
	"net/http"

	"github.com/vfg2006/mysanvi/internal/usecases/authenticating"
	"github.com/vfg2006/mysanvi/pkg/apiErrors"
)

type SendOTPRequest struct {
	Phone string `json:"phone"`
}

type VerifyOTPRequest struct {
	Code string `json:"code"`
}

type PasswordLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func LoginState(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.State())
	}
}

func SendOTP(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SendOTPRequest
		if !decodeBody(w, r, &req) {
			return
		}
		state, err := service.SendOTP(r.Context(), req.Phone)
		respondLogin(w, state, err)
	}
}

func VerifyOTP(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VerifyOTPRequest
		if !decodeBody(w, r, &req) {
			return
		}
		state, err := service.VerifyOTP(r.Context(), req.Code)
		respondLogin(w, state, err)
	}
}

func ResendOTP(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := service.ResendOTP(r.Context())
		respondLogin(w, state, err)
	}
}

func ChangePhone(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := service.ChangePhone()
		respondLogin(w, state, err)
	}
}

func PasswordLogin(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PasswordLoginRequest
		if !decodeBody(w, r, &req) {
			return
		}
		state, err := service.PasswordLogin(r.Context(), req.Username, req.Password)
		respondLogin(w, state, err)
	}
}

func RefreshSession(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.RefreshSession(r.Context()); err != nil {
			apiErrors.WriteFromError(w, err, "Failed to refresh session")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Logout limpa a sessão e fecha as telas abertas
func Logout(service authenticating.Authenticator, closeScreens ...func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := service.Logout()
		for _, closeScreen := range closeScreens {
			closeScreen()
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func respondLogin(w http.ResponseWriter, state authenticating.LoginState, err error) {
	if err != nil {
		writeScreenError(w, err, state.Error, state)
		return
	}
	writeJSON(w, http.StatusOK, state)
}
