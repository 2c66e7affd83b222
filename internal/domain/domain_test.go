package domain

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/mysanvi/pkg/apiErrors"
)

func intPtr(i int) *int { return &i }

func TestNewCredential(t *testing.T) {
	c, err := NewCredential("a1", "r1")
	require.NoError(t, err)
	assert.Equal(t, Credential{AccessToken: "a1", RefreshToken: "r1"}, c)

	for _, pair := range [][2]string{{"", "r1"}, {"a1", ""}, {"", ""}} {
		_, err := NewCredential(pair[0], pair[1])
		assert.True(t, apiErrors.IsValidationError(err))
	}
}

func TestNewPresence_AbsentDropsProfile(t *testing.T) {
	p := NewPresence(false, &ProfileData{Name: "x"}, PresenceResolved)
	assert.False(t, p.Exists)
	assert.Nil(t, p.Profile)

	_, ok := p.ShopID()
	assert.False(t, ok)
}

func TestBackendPresence_ShopID(t *testing.T) {
	p := NewPresence(true, &ProfileData{ShopID: intPtr(42)}, PresenceResolved)
	id, ok := p.ShopID()
	assert.True(t, ok)
	assert.Equal(t, 42, id)

	p = NewPresence(true, &ProfileData{}, PresenceResolved)
	_, ok = p.ShopID()
	assert.False(t, ok)
}

func TestSaleForm_ToInput(t *testing.T) {
	tests := []struct {
		name     string
		form     SaleForm
		wantErr  string
		validate func(t *testing.T, in SalesRecordInput)
	}{
		{
			name:    "cliente vazio",
			form:    SaleForm{CustomerID: "  ", Product: "Rice", Amount: "10"},
			wantErr: "customer_id",
		},
		{
			name:    "produto vazio",
			form:    SaleForm{CustomerID: "C1", Product: "", Amount: "10"},
			wantErr: "product",
		},
		{
			name:    "valor vazio",
			form:    SaleForm{CustomerID: "C1", Product: "Rice", Amount: ""},
			wantErr: "amount",
		},
		{
			name:    "valor zero",
			form:    SaleForm{CustomerID: "C1", Product: "Rice", Amount: "0"},
			wantErr: "amount",
		},
		{
			name:    "valor negativo",
			form:    SaleForm{CustomerID: "C1", Product: "Rice", Amount: "-5"},
			wantErr: "amount",
		},
		{
			name:    "valor não numérico",
			form:    SaleForm{CustomerID: "C1", Product: "Rice", Amount: "abc"},
			wantErr: "amount",
		},
		{
			name: "venda paga com modo de pagamento",
			form: SaleForm{CustomerID: " C1 ", Product: " Rice ", Amount: "120.50", Paid: true, PaymentMode: " UPI "},
			validate: func(t *testing.T, in SalesRecordInput) {
				assert.Equal(t, "C1", in.CustomerID)
				assert.Equal(t, "Rice", in.Product)
				assert.True(t, in.Amount.Equal(decimal.RequireFromString("120.5")))
				assert.Equal(t, "2024-01-15", in.Date)
				require.NotNil(t, in.PaymentMode)
				assert.Equal(t, "UPI", *in.PaymentMode)
			},
		},
		{
			name: "modo de pagamento ignorado quando não pago",
			form: SaleForm{CustomerID: "C1", Product: "Rice", Amount: "1", Paid: false, PaymentMode: "Cash"},
			validate: func(t *testing.T, in SalesRecordInput) {
				assert.Nil(t, in.PaymentMode)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := tt.form.ToInput("2024-01-15")
			if tt.wantErr != "" {
				var valErr *apiErrors.ValidationError
				require.ErrorAs(t, err, &valErr)
				assert.Equal(t, tt.wantErr, valErr.Field)
				return
			}
			require.NoError(t, err)
			tt.validate(t, in)
		})
	}
}

func TestSalesRecordInput_AmountEncodedAsNumber(t *testing.T) {
	in := SalesRecordInput{CustomerID: "C1", Date: "2024-01-15", Product: "Rice", Amount: decimal.RequireFromString("99.9")}

	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(in)
	require.NoError(t, err)

	assert.JSONEq(t, `{"customer_id":"C1","date":"2024-01-15","product_bought":"Rice","amount":99.9,"paid":false}`, string(out))
}

func TestSummaryQuery_WithDefaults(t *testing.T) {
	assert.Equal(t, SummaryQuery{Days: 14, Top: 10}, SummaryQuery{}.WithDefaults())
	assert.Equal(t, SummaryQuery{Days: 1, Top: 10}, SummaryQuery{Days: 1}.WithDefaults())
}

func TestDailySummary_LastTotal(t *testing.T) {
	var nilSummary *DailySummary
	_, ok := nilSummary.LastTotal()
	assert.False(t, ok)

	s := &DailySummary{Totals: []DailyTotal{{Date: "2024-01-14"}, {Date: "2024-01-15", TotalCount: 3}}}
	last, ok := s.LastTotal()
	assert.True(t, ok)
	assert.Equal(t, 3, last.TotalCount)
}
