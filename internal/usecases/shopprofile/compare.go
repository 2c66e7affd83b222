package shopprofile

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/mysanvi/internal/domain"
	"github.com/vfg2006/mysanvi/internal/screen"
	"github.com/vfg2006/mysanvi/pkg/apiErrors"
	"github.com/vfg2006/mysanvi/pkg/log"
	"github.com/vfg2006/mysanvi/pkg/utils"
)

// Multiplicador do ranking pedido na janela dupla em relação ao da atual
const compareTopFactor = 5

// Compare abre a comparação de um produto entre a janela atual e a anterior.
// Chamar de novo para o produto já aberto fecha a comparação e retorna nil.
func (s *Service) Compare(ctx context.Context, product string) (*domain.ProductComparison, error) {
	st := s.State()
	if !s.visit.Active() || st.Analytics.Status != screen.StatusLoaded {
		return nil, errors.Wrap(apiErrors.ErrInvalidState, "analytics not loaded")
	}

	if st.ExpandedProduct == product {
		s.state.Update(func(st ProfileState) ProfileState {
			st.ExpandedProduct = ""
			st.Comparison = nil
			st.CompareError = ""
			return st
		})
		return nil, nil
	}

	current, ok := st.Analytics.Data.Product(product)
	if !ok {
		return nil, apiErrors.NewValidationError("product", "product not found in analytics")
	}

	token := s.visit.Token()
	query := s.summaryQuery(2)
	query.Top *= compareTopFactor
	wide, err := s.sager.GetDailySummary(ctx, s.session.AuthHeader(), query)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("product", product).Warn("failed to load previous window")
		message := apiErrors.UserMessage(actionCompare, err)
		s.apply(token, func(st ProfileState) ProfileState {
			st.CompareError = message
			return st
		})
		return nil, err
	}

	comparison := compareWindows(current, wide)
	s.apply(token, func(st ProfileState) ProfileState {
		st.ExpandedProduct = product
		st.Comparison = &comparison
		st.CompareError = ""
		return st
	})
	return &comparison, nil
}

// compareWindows deriva a janela anterior subtraindo a atual da janela dupla.
// Produto ausente da janela dupla fica sem dados anteriores, com variações zeradas.
func compareWindows(current domain.ProductSummary, wide *domain.DailySummary) domain.ProductComparison {
	total, ok := wide.Product(current.Product)
	if !ok {
		return domain.ProductComparison{
			Product:         current.Product,
			CurrentSales:    current.SalesCount,
			CurrentRevenue:  current.TotalAmount,
			PreviousRevenue: decimal.Zero,
		}
	}

	previousSales := max(total.SalesCount-current.SalesCount, 0)
	previousRevenue := decimal.Max(total.TotalAmount.Sub(current.TotalAmount), decimal.Zero)

	salesChange := utils.PercentChange(float64(current.SalesCount), float64(previousSales))
	revenueChange := utils.PercentChange(current.TotalAmount.InexactFloat64(), previousRevenue.InexactFloat64())

	return domain.ProductComparison{
		Product:         current.Product,
		CurrentSales:    current.SalesCount,
		HasPrevious:     true,
		PreviousSales:   previousSales,
		CurrentRevenue:  current.TotalAmount,
		PreviousRevenue: previousRevenue,
		SalesChange:     salesChange,
		RevenueChange:   revenueChange,
		OverallTrend:    utils.RoundWithTwoDecimalPlace((salesChange + revenueChange) / 2),
	}
}
