package shopprofile

import (
	"slices"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/mysanvi/internal/domain"
	"github.com/vfg2006/mysanvi/internal/screen"
)

type Tab string

const (
	TabOverview    Tab = "overview"
	TabSales       Tab = "sales"
	TabDebts       Tab = "debts"
	TabPredictions Tab = "predictions"
	TabAnalytics   Tab = "analytics"
)

var Tabs = []Tab{TabOverview, TabSales, TabDebts, TabPredictions, TabAnalytics}

func (t Tab) Valid() bool {
	return slices.Contains(Tabs, t)
}

// TodayFigure é o resumo de hoje da aba Overview. Fallback indica o valor fixo usado quando a busca falha.
type TodayFigure struct {
	Amount   decimal.Decimal `json:"amount"`
	Count    int             `json:"count"`
	Fallback bool            `json:"fallback"`
}

type ProfileState struct {
	Active      Tab                                   `json:"active"`
	Today       screen.Loadable[TodayFigure]          `json:"today"`
	Sales       screen.Loadable[[]domain.SalesRecord] `json:"sales"`
	Debts       screen.Loadable[[]domain.DebtSummary] `json:"debts"`
	Predictions screen.Loadable[[]domain.Prediction]  `json:"predictions"`
	Analytics   screen.Loadable[*domain.DailySummary] `json:"analytics"`

	// Produto com a comparação aberta na aba Analytics
	ExpandedProduct string                    `json:"expanded_product,omitempty"`
	Comparison      *domain.ProductComparison `json:"comparison,omitempty"`
	CompareError    string                    `json:"compare_error,omitempty"`
}

func initialState() ProfileState {
	return ProfileState{
		Active:      TabOverview,
		Today:       screen.Idle[TodayFigure](),
		Sales:       screen.Idle[[]domain.SalesRecord](),
		Debts:       screen.Idle[[]domain.DebtSummary](),
		Predictions: screen.Idle[[]domain.Prediction](),
		Analytics:   screen.Idle[*domain.DailySummary](),
	}
}
