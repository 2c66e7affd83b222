package domain

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/mysanvi/pkg/apiErrors"
)

func init() {
	// Os backends trocam valores monetários como números JSON
	decimal.MarshalJSONWithoutQuotes = true
}

// SalesRecord é uma venda persistida ou a ser persistida. ID é atribuído pelo backend.
type SalesRecord struct {
	ID          *int            `json:"id,omitempty"`
	CustomerID  string          `json:"customer_id"`
	Date        string          `json:"date"`
	Product     string          `json:"product_bought"`
	Amount      decimal.Decimal `json:"amount"`
	Paid        bool            `json:"paid"`
	PaymentMode *string         `json:"payment_mode,omitempty"`
}

// SalesRecordInput é o corpo de criação/atualização de uma venda
type SalesRecordInput struct {
	CustomerID  string          `json:"customer_id"`
	Date        string          `json:"date"`
	Product     string          `json:"product_bought"`
	Amount      decimal.Decimal `json:"amount"`
	Paid        bool            `json:"paid"`
	PaymentMode *string         `json:"payment_mode,omitempty"`
}

// SaleForm é o formulário de venda como digitado pelo usuário
type SaleForm struct {
	CustomerID  string `json:"customer_id"`
	Product     string `json:"product"`
	Amount      string `json:"amount"`
	Paid        bool   `json:"paid"`
	PaymentMode string `json:"payment_mode"`
}

// ToInput valida o formulário e produz o corpo da requisição.
// Cliente, produto e valor são obrigatórios e o valor precisa ser positivo.
func (f SaleForm) ToInput(date string) (SalesRecordInput, error) {
	customerID := strings.TrimSpace(f.CustomerID)
	product := strings.TrimSpace(f.Product)
	amountRaw := strings.TrimSpace(f.Amount)

	if customerID == "" || product == "" || amountRaw == "" {
		field := "customer_id"
		switch {
		case customerID == "":
		case product == "":
			field = "product"
		default:
			field = "amount"
		}
		return SalesRecordInput{}, apiErrors.NewValidationError(field, "Please fill all required fields")
	}

	amount, err := decimal.NewFromString(amountRaw)
	if err != nil || !amount.IsPositive() {
		return SalesRecordInput{}, apiErrors.NewValidationError("amount", "Please enter a valid amount")
	}

	input := SalesRecordInput{
		CustomerID: customerID,
		Date:       date,
		Product:    product,
		Amount:     amount,
		Paid:       f.Paid,
	}

	if mode := strings.TrimSpace(f.PaymentMode); f.Paid && mode != "" {
		input.PaymentMode = &mode
	}

	return input, nil
}
