package handler

import (
	"net/http"

	"github.com/vfg2006/mysanvi/internal/api/handler/router"
	"github.com/vfg2006/mysanvi/internal/scheduler"
	"github.com/vfg2006/mysanvi/internal/usecases/authenticating"
	"github.com/vfg2006/mysanvi/internal/usecases/community"
	"github.com/vfg2006/mysanvi/internal/usecases/dashboard"
	"github.com/vfg2006/mysanvi/internal/usecases/ledger"
	"github.com/vfg2006/mysanvi/internal/usecases/shopprofile"
	"github.com/vfg2006/mysanvi/pkg/middleware"
)

func Healthcheck(session middleware.SessionChecker) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(session),
		},
	}
}

// Login recebe as funções que fecham as demais telas no logout
func Login(service authenticating.Authenticator, closeScreens ...func()) []router.Route {
	return []router.Route{
		{Path: "/v1/login", Method: http.MethodGet, Handler: LoginState(service)},
		{Path: "/v1/login/otp", Method: http.MethodPost, Handler: SendOTP(service)},
		{Path: "/v1/login/otp/verify", Method: http.MethodPost, Handler: VerifyOTP(service)},
		{Path: "/v1/login/otp/resend", Method: http.MethodPost, Handler: ResendOTP(service)},
		{Path: "/v1/login/change-phone", Method: http.MethodPost, Handler: ChangePhone(service)},
		{Path: "/v1/login/password", Method: http.MethodPost, Handler: PasswordLogin(service)},
		{Path: "/v1/session/refresh", Method: http.MethodPost, Handler: RefreshSession(service)},
		{Path: "/v1/logout", Method: http.MethodPost, Handler: Logout(service, closeScreens...)},
	}
}

func Dashboard(login authenticating.Authenticator, service *dashboard.Service, webView *community.Service) []router.Route {
	return []router.Route{
		{Path: "/v1/dashboard", Method: http.MethodGet, Handler: DashboardState(service)},
		{Path: "/v1/dashboard/enter", Method: http.MethodPost, Handler: EnterDashboard(login, service)},
		{Path: "/v1/dashboard/leave", Method: http.MethodPost, Handler: LeaveDashboard(service)},
		{Path: "/v1/dashboard/community", Method: http.MethodPost, Handler: OpenCommunity(service, webView)},
		{Path: "/v1/dashboard/primary", Method: http.MethodPost, Handler: OpenPrimary(service)},
	}
}

// Sales exige sessão: sem credencial a tela nem chega a abrir
func Sales(service *ledger.Service) []router.Route {
	return []router.Route{
		{Path: "/v1/sales", Method: http.MethodGet, Handler: SalesState(service)},
		{Path: "/v1/sales", Method: http.MethodPost, Handler: AddSale(service)},
		{Path: "/v1/sales/enter", Method: http.MethodPost, Handler: EnterSales(service)},
		{Path: "/v1/sales/retry", Method: http.MethodPost, Handler: RetrySales(service)},
		{Path: "/v1/sales/leave", Method: http.MethodPost, Handler: LeaveSales(service)},
		{Path: "/v1/sales/:id", Method: http.MethodPut, Handler: UpdateSale(service)},
		{Path: "/v1/sales/:id", Method: http.MethodDelete, Handler: DeleteSale(service)},
	}
}

func ShopProfile(service *shopprofile.Service, refresh *scheduler.SummaryRefreshService) []router.Route {
	return []router.Route{
		{Path: "/v1/shop", Method: http.MethodGet, Handler: ShopProfileState(service)},
		{Path: "/v1/shop/enter", Method: http.MethodPost, Handler: EnterShopProfile(service)},
		{Path: "/v1/shop/leave", Method: http.MethodPost, Handler: LeaveShopProfile(service)},
		{Path: "/v1/shop/tabs/:tab", Method: http.MethodPost, Handler: SelectShopTab(service)},
		{Path: "/v1/shop/refresh", Method: http.MethodPost, Handler: RefreshShopProfile(service)},
		{Path: "/v1/shop/compare", Method: http.MethodPost, Handler: CompareProduct(service)},
		{Path: "/v1/shop/analytics/refresh", Method: http.MethodPost, Handler: RunAnalyticsRefresh(refresh)},
		{Path: "/v1/shop/analytics/refresh", Method: http.MethodGet, Handler: AnalyticsRefreshStatus(refresh)},
	}
}

func WebView(service *community.Service) []router.Route {
	return []router.Route{
		{Path: "/v1/webview", Method: http.MethodGet, Handler: WebViewState(service)},
		{Path: "/v1/webview/open", Method: http.MethodPost, Handler: OpenWebView(service)},
		{Path: "/v1/webview/navigate", Method: http.MethodPost, Handler: NavigateWebView(service)},
		{Path: "/v1/webview/page-started", Method: http.MethodPost, Handler: PageStarted(service)},
		{Path: "/v1/webview/page-finished", Method: http.MethodPost, Handler: PageFinished(service)},
		{Path: "/v1/webview/load-failed", Method: http.MethodPost, Handler: PageLoadFailed(service)},
		{Path: "/v1/webview/retry", Method: http.MethodPost, Handler: RetryWebView(service)},
		{Path: "/v1/webview/reload", Method: http.MethodPost, Handler: ReloadWebView(service)},
		{Path: "/v1/webview/back", Method: http.MethodPost, Handler: BackWebView(service)},
	}
}
