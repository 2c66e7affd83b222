package handler

import (
	"net/http"

	"github.com/vfg2006/mysanvi/internal/api/handler/router"
	"github.com/vfg2006/mysanvi/internal/domain"
	"github.com/vfg2006/mysanvi/internal/usecases/shopprofile"
)

type CompareRequest struct {
	Product string `json:"product"`
}

type CompareResponse struct {
	Comparison *domain.ProductComparison `json:"comparison"`
	State      shopprofile.ProfileState   `json:"state"`
}

func EnterShopProfile(service *shopprofile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.Enter(r.Context()))
	}
}

func ShopProfileState(service *shopprofile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.State())
	}
}

func LeaveShopProfile(service *shopprofile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service.Leave()
		w.WriteHeader(http.StatusNoContent)
	}
}

func SelectShopTab(service *shopprofile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab := shopprofile.Tab(router.Param(r, "tab"))
		state, err := service.SelectTab(r.Context(), tab)
		if err != nil {
			writeScreenError(w, err, "", state)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func RefreshShopProfile(service *shopprofile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := service.Refresh(r.Context())
		if err != nil {
			writeScreenError(w, err, "", state)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

// CompareProduct abre ou fecha a comparação de um produto da aba Analytics
func CompareProduct(service *shopprofile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CompareRequest
		if !decodeBody(w, r, &req) {
			return
		}

		comparison, err := service.Compare(r.Context(), req.Product)
		state := service.State()
		if err != nil {
			writeScreenError(w, err, state.CompareError, state)
			return
		}
		writeJSON(w, http.StatusOK, CompareResponse{Comparison: comparison, State: state})
	}
}
