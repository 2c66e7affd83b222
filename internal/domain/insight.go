package domain

import "github.com/shopspring/decimal"

// DebtSummary é um agregado calculado no servidor por cliente
type DebtSummary struct {
	CustomerID        string          `json:"customer_id"`
	TotalUnpaidAmount decimal.Decimal `json:"total_unpaid_amount"`
	OldestUnpaidDate  string          `json:"oldest_unpaid_date"`
	UnpaidCount       int             `json:"unpaid_count"`
}

type Prediction struct {
	ID               int     `json:"id"`
	CustomerID       string  `json:"customer_id"`
	PredictedProduct string  `json:"predicted_product"`
	Score            float64 `json:"score"`
	CreatedAt        string  `json:"created_at"`
	ExpiresAt        *string `json:"expires_at,omitempty"`
}

type DailyTotal struct {
	Date        string          `json:"date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalCount  int             `json:"total_count"`
}

type ProductSummary struct {
	Product     string          `json:"product"`
	SalesCount  int             `json:"sales_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type DailySummary struct {
	Totals   []DailyTotal     `json:"totals"`
	Products []ProductSummary `json:"products"`
	Meta     map[string]any   `json:"meta,omitempty"`
}

// Product busca o resumo de um produto pelo nome
func (s *DailySummary) Product(name string) (ProductSummary, bool) {
	if s == nil {
		return ProductSummary{}, false
	}
	for _, p := range s.Products {
		if p.Product == name {
			return p, true
		}
	}
	return ProductSummary{}, false
}

// LastTotal retorna o total mais recente da janela
func (s *DailySummary) LastTotal() (DailyTotal, bool) {
	if s == nil || len(s.Totals) == 0 {
		return DailyTotal{}, false
	}
	return s.Totals[len(s.Totals)-1], true
}

// DebtQuery são os filtros opcionais de listDebts
type DebtQuery struct {
	Days  *int
	Limit *int
}

// SummaryQuery são os parâmetros de getDailySummary; zero usa os padrões 14 e 10
type SummaryQuery struct {
	Days int
	Top  int
}

const (
	DefaultSummaryDays = 14
	DefaultSummaryTop  = 10
)

// WithDefaults preenche os parâmetros omitidos
func (q SummaryQuery) WithDefaults() SummaryQuery {
	if q.Days <= 0 {
		q.Days = DefaultSummaryDays
	}
	if q.Top <= 0 {
		q.Top = DefaultSummaryTop
	}
	return q
}

// ProductComparison compara um produto entre a janela atual e a anterior.
// HasPrevious é falso quando o backend não trouxe o produto na janela dupla.
type ProductComparison struct {
	Product         string          `json:"product"`
	HasPrevious     bool            `json:"has_previous"`
	CurrentSales    int             `json:"current_sales"`
	PreviousSales   int             `json:"previous_sales"`
	CurrentRevenue  decimal.Decimal `json:"current_revenue"`
	PreviousRevenue decimal.Decimal `json:"previous_revenue"`
	SalesChange     float64         `json:"sales_change"`
	RevenueChange   float64         `json:"revenue_change"`
	OverallTrend    float64         `json:"overall_trend"`
}

// PerformingWell indica tendência geral positiva
func (c ProductComparison) PerformingWell() bool {
	return c.OverallTrend > 0
}
