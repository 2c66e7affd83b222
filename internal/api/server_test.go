package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mandiimocks "github.com/vfg2006/mysanvi/infrastructure/integrator/mandii/mocks"
	sagermocks "github.com/vfg2006/mysanvi/infrastructure/integrator/sager/mocks"
	"github.com/vfg2006/mysanvi/internal/config"
	"github.com/vfg2006/mysanvi/internal/domain"
	"github.com/vfg2006/mysanvi/internal/scheduler"
	"github.com/vfg2006/mysanvi/internal/session"
	"github.com/vfg2006/mysanvi/internal/usecases/authenticating"
	"github.com/vfg2006/mysanvi/internal/usecases/community"
	"github.com/vfg2006/mysanvi/internal/usecases/dashboard"
	"github.com/vfg2006/mysanvi/internal/usecases/ledger"
	"github.com/vfg2006/mysanvi/internal/usecases/resolving"
	"github.com/vfg2006/mysanvi/internal/usecases/shopprofile"
	"go.uber.org/mock/gomock"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func intPtr(i int) *int { return &i }

type testServer struct {
	handler http.Handler
	sager   *sagermocks.MockClient
	mandii  *mandiimocks.MockClient
	store   *session.Store
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.Server{Host: "localhost", Port: "0", AllowedOrigins: []string{"http://localhost:3000"}},
		SaGer:  config.SaGer{BaseURL: "http://10.0.2.2:8000/", PublicURL: "http://10.0.2.2:8000/"},
		Mandii: config.Mandii{
			BaseURL:         "http://10.0.2.2:8001/",
			AllowedHost:     "10.0.2.2:8001",
			FeedURL:         "http://10.0.2.2:8001/v1/feed/page/",
			ShopURLTemplate: "http://10.0.2.2:8001/v1/shop/%d/",
		},
		ShopProfile: config.ShopProfile{
			SummaryDays:            14,
			SummaryTop:             10,
			OverviewFallbackAmount: 1250,
			OverviewFallbackCount:  8,
		},
		SummaryRefresh: config.SummaryRefresh{CronSchedule: "*/15 * * * *"},
	}
}

func newTestServer(t *testing.T) *testServer {
	ctrl := gomock.NewController(t)
	mockSaGer := sagermocks.NewMockClient(ctrl)
	mockMandii := mandiimocks.NewMockClient(ctrl)
	store := session.NewStore()
	cfg := testConfig()

	shop := shopprofile.NewService(cfg, mockSaGer, store)
	screens := Screens{
		Login:       authenticating.NewService(mockSaGer, store),
		Dashboard:   dashboard.NewService(cfg, resolving.NewService(mockMandii), store),
		Sales:       ledger.NewService(mockSaGer, store),
		ShopProfile: shop,
		WebView:     community.NewService(cfg),
	}

	srv, err := New(cfg, store, screens, scheduler.NewSummaryRefreshService(shop, cfg))
	require.NoError(t, err)

	return &testServer{handler: srv.Handler(), sager: mockSaGer, mandii: mockMandii, store: store}
}

func (s *testServer) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var payload map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), rec.Body.String())
	}
	return rec, payload
}

func (s *testServer) login(t *testing.T) {
	t.Helper()

	s.sager.EXPECT().SendOTP(gomock.Any(), "9876543210").Return(&domain.OtpResult{Detail: "OTP sent"}, nil)
	s.sager.EXPECT().VerifyOTP(gomock.Any(), "9876543210", "135790").Return(&domain.AuthResult{
		Credential: domain.Credential{AccessToken: "a1", RefreshToken: "r1"},
		Profile:    &domain.ProfileData{ID: intPtr(7), ShopName: "Demo Shop"},
	}, nil)

	rec, _ := s.do(t, http.MethodPost, "/v1/login/otp", `{"phone":"9876543210"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec, _ = s.do(t, http.MethodPost, "/v1/login/otp/verify", `{"code":"135790"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestServer_Healthcheck(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(t, http.MethodGet, "/healthcheck", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["session"])
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}

func TestServer_Errors(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		status  int
		code    string
		message string
	}{
		{
			name:    "vendas sem sessão",
			method:  http.MethodPost,
			path:    "/v1/sales/enter",
			status:  http.StatusUnauthorized,
			code:    "AUTH_001",
			message: "No authentication token found",
		},
		{
			name:    "perfil da loja sem sessão",
			method:  http.MethodGet,
			path:    "/v1/shop",
			status:  http.StatusUnauthorized,
			code:    "AUTH_001",
			message: "No authentication token found",
		},
		{
			name:    "telefone em branco",
			method:  http.MethodPost,
			path:    "/v1/login/otp",
			body:    `{"phone":"  "}`,
			status:  http.StatusBadRequest,
			code:    "VAL_002",
			message: "Please enter your phone number",
		},
		{
			name:   "corpo inválido",
			method: http.MethodPost,
			path:   "/v1/login/otp",
			body:   `{"phone":`,
			status: http.StatusBadRequest,
			code:   "VAL_001",
		},
		{
			name:   "verificar antes de enviar o código",
			method: http.MethodPost,
			path:   "/v1/login/otp/verify",
			body:   `{"code":"135790"}`,
			status: http.StatusConflict,
			code:   "SRV_003",
		},
		{
			name:   "dashboard antes do login",
			method: http.MethodPost,
			path:   "/v1/dashboard/enter",
			status: http.StatusConflict,
			code:   "SRV_003",
		},
		{
			name:   "navegador embutido fechado",
			method: http.MethodPost,
			path:   "/v1/webview/reload",
			status: http.StatusConflict,
			code:   "SRV_003",
		},
		{
			name:    "abrir página fora da comunidade",
			method:  http.MethodPost,
			path:    "/v1/webview/open",
			body:    `{"url":"https://evil.example.com/"}`,
			status:  http.StatusBadRequest,
			code:    "VAL_002",
			message: "destination is outside the community site",
		},
		{
			name:   "rota inexistente",
			method: http.MethodGet,
			path:   "/v1/unknown",
			status: http.StatusNotFound,
			code:   "SRV_002",
		},
		{
			name:    "refresh sem sessão",
			method:  http.MethodPost,
			path:    "/v1/session/refresh",
			status:  http.StatusUnauthorized,
			code:    "AUTH_001",
			message: "No authentication token found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			rec, body := s.do(t, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.code, body["code"])
			if tt.message != "" {
				assert.Equal(t, tt.message, body["message"])
			}
		})
	}
}

func TestServer_LoginToCommunity(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	assert.Equal(t, "Bearer a1", s.store.AuthHeader())

	rec, body := s.do(t, http.MethodGet, "/v1/login", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "authenticated", body["step"])

	rec, body = s.do(t, http.MethodPost, "/v1/dashboard/enter", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, body["sager_authenticated"])

	s.mandii.EXPECT().CheckUserStatus(gomock.Any(), "9876543210").Return(
		domain.NewPresence(true, &domain.ProfileData{IsShop: true, ShopID: intPtr(42)}, domain.PresenceResolved), nil)

	rec, body = s.do(t, http.MethodPost, "/v1/dashboard/community", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	dest := body["destination"].(map[string]any)
	assert.Equal(t, "web_view", dest["kind"])
	assert.Equal(t, "http://10.0.2.2:8001/v1/shop/42/", dest["url"])
	webView := body["web_view"].(map[string]any)
	assert.Equal(t, "http://10.0.2.2:8001/v1/shop/42/", webView["start_url"])

	rec, body = s.do(t, http.MethodPost, "/v1/webview/navigate", `{"url":"https://evil.example.com/"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["allow"])

	rec, body = s.do(t, http.MethodPost, "/v1/webview/page-started", `{"url":"http://10.0.2.2:8001/v1/post/9/"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["subpage"])

	rec, body = s.do(t, http.MethodPost, "/v1/webview/back", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "go_back", body["action"])

	rec, body = s.do(t, http.MethodPost, "/v1/webview/retry", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["subpage"])

	rec, body = s.do(t, http.MethodPost, "/v1/webview/back", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "exit", body["action"])
}

func TestServer_PrimaryDestination(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(t, http.MethodPost, "/v1/dashboard/primary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "external", body["kind"])
	assert.Equal(t, "http://10.0.2.2:8000/", body["url"])

	s.login(t)

	rec, body = s.do(t, http.MethodPost, "/v1/dashboard/primary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "shop_profile", body["kind"])
}

func TestServer_SalesLedger(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	existing := domain.SalesRecord{ID: intPtr(1), CustomerID: "C1", Date: "2024-01-14", Product: "Rice", Amount: decimal.NewFromInt(100)}
	s.sager.EXPECT().ListSales(gomock.Any(), "Bearer a1").Return([]domain.SalesRecord{existing}, nil)

	rec, body := s.do(t, http.MethodPost, "/v1/sales/enter", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	records := body["records"].(map[string]any)
	assert.Equal(t, "loaded", records["status"])
	assert.Len(t, records["data"], 1)

	rec, body = s.do(t, http.MethodPost, "/v1/sales", `{"customer_id":"","product":"Oil","amount":"10"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VAL_002", body["code"])
	assert.Equal(t, "Please fill all required fields", body["message"])

	s.sager.EXPECT().CreateSale(gomock.Any(), "Bearer a1", gomock.Any()).
		DoAndReturn(func(_ any, _ string, input domain.SalesRecordInput) (*domain.SalesRecord, error) {
			return &domain.SalesRecord{
				ID:         intPtr(2),
				CustomerID: input.CustomerID,
				Date:       input.Date,
				Product:    input.Product,
				Amount:     input.Amount,
			}, nil
		})

	rec, body = s.do(t, http.MethodPost, "/v1/sales", `{"customer_id":"C2","product":"Oil","amount":"250.50"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	record := body["record"].(map[string]any)
	assert.Equal(t, "C2", record["customer_id"])
	assert.Equal(t, 250.5, record["amount"])
	state := body["state"].(map[string]any)
	assert.Len(t, state["records"].(map[string]any)["data"], 2)

	s.sager.EXPECT().DeleteSale(gomock.Any(), "Bearer a1", 1).Return(nil)

	rec, body = s.do(t, http.MethodDelete, "/v1/sales/1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	state = body["state"].(map[string]any)
	assert.Len(t, state["records"].(map[string]any)["data"], 1)

	rec, body = s.do(t, http.MethodPut, "/v1/sales/abc", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VAL_001", body["code"])
}

func TestServer_ShopProfile(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	s.sager.EXPECT().GetDailySummary(gomock.Any(), "Bearer a1", domain.SummaryQuery{Days: 1}).Return(&domain.DailySummary{
		Totals: []domain.DailyTotal{{Date: "2024-01-15", TotalAmount: decimal.NewFromInt(300), TotalCount: 3}},
	}, nil)

	rec, body := s.do(t, http.MethodPost, "/v1/shop/enter", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "overview", body["active"])
	today := body["today"].(map[string]any)
	assert.Equal(t, "loaded", today["status"])
	assert.Equal(t, 300.0, today["data"].(map[string]any)["amount"])

	rec, body = s.do(t, http.MethodPost, "/v1/shop/tabs/weekly", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VAL_002", body["code"])

	s.sager.EXPECT().ListDebts(gomock.Any(), "Bearer a1", domain.DebtQuery{}).Return([]domain.DebtSummary{}, nil)

	rec, body = s.do(t, http.MethodPost, "/v1/shop/tabs/debts", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "debts", body["active"])
	assert.Equal(t, "loaded", body["debts"].(map[string]any)["status"])

	rec, body = s.do(t, http.MethodPost, "/v1/shop/compare", `{"product":"Rice"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "SRV_003", body["code"])

	rec, body = s.do(t, http.MethodGet, "/v1/shop/analytics/refresh", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["enabled"])
	assert.Nil(t, body["last_refresh_at"])
}

func TestServer_Logout(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	rec, _ := s.do(t, http.MethodPost, "/v1/dashboard/enter", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := s.do(t, http.MethodPost, "/v1/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "phone_input", body["step"])
	assert.False(t, s.store.HasValidSession())

	rec, body = s.do(t, http.MethodGet, "/v1/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, body["user_status"])

	rec, body = s.do(t, http.MethodGet, "/v1/sales", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "AUTH_001", body["code"])
}

func TestServer_Cors(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		allowed bool
	}{
		{name: "origem configurada", origin: "http://localhost:3000", allowed: true},
		{name: "origem desconhecida", origin: "http://other.local", allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			req := httptest.NewRequest(http.MethodOptions, "/v1/login", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			s.handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			if tt.allowed {
				assert.Equal(t, tt.origin, rec.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}
