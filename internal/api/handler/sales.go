package handler

import (
	"net/http"

	"github.com/vfg2006/mysanvi/internal/domain"
	"github.com/vfg2006/mysanvi/internal/usecases/ledger"
)

type SaleResponse struct {
	Record *domain.SalesRecord `json:"record,omitempty"`
	State  ledger.LedgerState  `json:"state"`
}

func EnterSales(service *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.Enter(r.Context()))
	}
}

func SalesState(service *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.State())
	}
}

func RetrySales(service *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := service.Retry(r.Context())
		if err != nil {
			writeScreenError(w, err, "", state)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func LeaveSales(service *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service.Leave()
		w.WriteHeader(http.StatusNoContent)
	}
}

func AddSale(service *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form domain.SaleForm
		if !decodeBody(w, r, &form) {
			return
		}

		record, err := service.AddSale(r.Context(), form)
		respondSale(w, service, http.StatusCreated, record, err)
	}
}

func UpdateSale(service *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}
		var form domain.SaleForm
		if !decodeBody(w, r, &form) {
			return
		}

		record, err := service.UpdateSale(r.Context(), id, form)
		respondSale(w, service, http.StatusOK, record, err)
	}
}

func DeleteSale(service *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		err := service.DeleteSale(r.Context(), id)
		respondSale(w, service, http.StatusOK, nil, err)
	}
}

func respondSale(w http.ResponseWriter, service *ledger.Service, status int, record *domain.SalesRecord, err error) {
	state := service.State()
	if err != nil {
		writeScreenError(w, err, state.Form.Error, state)
		return
	}
	writeJSON(w, status, SaleResponse{Record: record, State: state})
}
