package sagerclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vfg2006/mysanvi/infrastructure/integrator/transport"
	"github.com/vfg2006/mysanvi/internal/domain"
	"github.com/vfg2006/mysanvi/pkg/apiErrors"
)

func (c *SaGerClient) ListSales(ctx context.Context, authHeader string) ([]domain.SalesRecord, error) {
	if authHeader == "" {
		return nil, apiErrors.ErrAuthenticationRequired
	}

	records := []domain.SalesRecord{}
	err := c.requester.Do(ctx, transport.Call{
		Op:         "sager.list_sales",
		Method:     http.MethodGet,
		Path:       "api/sales/",
		AuthHeader: authHeader,
		Out:        &records,
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (c *SaGerClient) CreateSale(ctx context.Context, authHeader string, input domain.SalesRecordInput) (*domain.SalesRecord, error) {
	if authHeader == "" {
		return nil, apiErrors.ErrAuthenticationRequired
	}

	var record domain.SalesRecord
	err := c.requester.Do(ctx, transport.Call{
		Op:         "sager.create_sale",
		Method:     http.MethodPost,
		Path:       "api/sales/",
		AuthHeader: authHeader,
		Body:       input,
		Out:        &record,
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *SaGerClient) UpdateSale(ctx context.Context, authHeader string, id int, input domain.SalesRecordInput) (*domain.SalesRecord, error) {
	if authHeader == "" {
		return nil, apiErrors.ErrAuthenticationRequired
	}

	var record domain.SalesRecord
	err := c.requester.Do(ctx, transport.Call{
		Op:         "sager.update_sale",
		Method:     http.MethodPut,
		Path:       salePath(id),
		AuthHeader: authHeader,
		Body:       input,
		Out:        &record,
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *SaGerClient) DeleteSale(ctx context.Context, authHeader string, id int) error {
	if authHeader == "" {
		return apiErrors.ErrAuthenticationRequired
	}

	return c.requester.Do(ctx, transport.Call{
		Op:         "sager.delete_sale",
		Method:     http.MethodDelete,
		Path:       salePath(id),
		AuthHeader: authHeader,
	})
}

func salePath(id int) string {
	return fmt.Sprintf("api/sales/%d/", id)
}
