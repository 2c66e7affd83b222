package sagerclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vfg2006/mysanvi/infrastructure/integrator/transport"
	"github.com/vfg2006/mysanvi/internal/domain"
	"github.com/vfg2006/mysanvi/pkg/apiErrors"
)

func (c *SaGerClient) ListDebts(ctx context.Context, authHeader string, query domain.DebtQuery) ([]domain.DebtSummary, error) {
	if authHeader == "" {
		return nil, apiErrors.ErrAuthenticationRequired
	}

	params := url.Values{}
	if query.Days != nil {
		params.Set("days", strconv.Itoa(*query.Days))
	}
	if query.Limit != nil {
		params.Set("limit", strconv.Itoa(*query.Limit))
	}

	debts := []domain.DebtSummary{}
	err := c.requester.Do(ctx, transport.Call{
		Op:         "sager.list_debts",
		Method:     http.MethodGet,
		Path:       "api/debts/",
		Query:      params,
		AuthHeader: authHeader,
		Out:        &debts,
	})
	if err != nil {
		return nil, err
	}
	return debts, nil
}

func (c *SaGerClient) ListPredictions(ctx context.Context, authHeader string) ([]domain.Prediction, error) {
	if authHeader == "" {
		return nil, apiErrors.ErrAuthenticationRequired
	}

	predictions := []domain.Prediction{}
	err := c.requester.Do(ctx, transport.Call{
		Op:         "sager.list_predictions",
		Method:     http.MethodGet,
		Path:       "api/predictions/",
		AuthHeader: authHeader,
		Out:        &predictions,
	})
	if err != nil {
		return nil, err
	}
	return predictions, nil
}

// GetDailySummary usa days=14 e top=10 quando omitidos
func (c *SaGerClient) GetDailySummary(ctx context.Context, authHeader string, query domain.SummaryQuery) (*domain.DailySummary, error) {
	if authHeader == "" {
		return nil, apiErrors.ErrAuthenticationRequired
	}

	query = query.WithDefaults()
	params := url.Values{}
	params.Set("days", strconv.Itoa(query.Days))
	params.Set("top", strconv.Itoa(query.Top))

	var summary domain.DailySummary
	err := c.requester.Do(ctx, transport.Call{
		Op:         "sager.daily_summary",
		Method:     http.MethodGet,
		Path:       "api/daily-summary/",
		Query:      params,
		AuthHeader: authHeader,
		Out:        &summary,
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
