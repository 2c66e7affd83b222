package sagerclient

import (
	"context"
	"net/http"

	"github.com/vfg2006/mysanvi/infrastructure/integrator/transport"
	"github.com/vfg2006/mysanvi/internal/config"
	"github.com/vfg2006/mysanvi/internal/domain"
)

//go:generate mockgen -source=client.go -destination=../mocks/mock_client.go -package=mocks

// Client é o gateway do backend de vendas (SaGer).
// Operações autenticadas falham com ErrAuthenticationRequired antes de qualquer chamada quando authHeader é vazio.
type Client interface {
	SendOTP(ctx context.Context, phone string) (*domain.OtpResult, error)
	VerifyOTP(ctx context.Context, phone, code string) (*domain.AuthResult, error)
	Login(ctx context.Context, username, password string) (*domain.AuthResult, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)

	ListSales(ctx context.Context, authHeader string) ([]domain.SalesRecord, error)
	CreateSale(ctx context.Context, authHeader string, input domain.SalesRecordInput) (*domain.SalesRecord, error)
	UpdateSale(ctx context.Context, authHeader string, id int, input domain.SalesRecordInput) (*domain.SalesRecord, error)
	DeleteSale(ctx context.Context, authHeader string, id int) error

	ListDebts(ctx context.Context, authHeader string, query domain.DebtQuery) ([]domain.DebtSummary, error)
	ListPredictions(ctx context.Context, authHeader string) ([]domain.Prediction, error)
	GetDailySummary(ctx context.Context, authHeader string, query domain.SummaryQuery) (*domain.DailySummary, error)
}

type SaGerClient struct {
	requester *transport.Requester
}

// NewClient cria o cliente com a base configurada em SAGER_BASE_URL
func NewClient(cfg *config.Config, httpClient *http.Client) (Client, error) {
	requester, err := transport.NewRequester(httpClient, cfg.SaGer.BaseURL)
	if err != nil {
		return nil, err
	}
	return &SaGerClient{requester: requester}, nil
}
