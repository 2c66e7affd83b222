package api

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/mysanvi/internal/api/handler"
	"github.com/vfg2006/mysanvi/internal/api/handler/router"
	"github.com/vfg2006/mysanvi/internal/config"
	"github.com/vfg2006/mysanvi/internal/scheduler"
	"github.com/vfg2006/mysanvi/internal/session"
	"github.com/vfg2006/mysanvi/internal/usecases/authenticating"
	"github.com/vfg2006/mysanvi/internal/usecases/community"
	"github.com/vfg2006/mysanvi/internal/usecases/dashboard"
	"github.com/vfg2006/mysanvi/internal/usecases/ledger"
	"github.com/vfg2006/mysanvi/internal/usecases/shopprofile"
	"github.com/vfg2006/mysanvi/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

// Screens agrupa os controladores de tela expostos à camada de apresentação
type Screens struct {
	Login       authenticating.Authenticator
	Dashboard   *dashboard.Service
	Sales       *ledger.Service
	ShopProfile *shopprofile.Service
	WebView     *community.Service
}

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	sessionManager session.Manager,
	screens Screens,
	summaryRefresh *scheduler.SummaryRefreshService,
) (*Server, error) {
	requireSession := middleware.RequireSession(sessionManager)

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(sessionManager)...),
		router.WithRoutes(handler.Login(
			screens.Login,
			screens.Dashboard.Leave,
			screens.Sales.Leave,
			screens.ShopProfile.Leave,
			screens.WebView.Close,
		)...),
		router.WithRoutes(handler.Dashboard(screens.Login, screens.Dashboard, screens.WebView)...),
		router.WithRoutes(handler.WebView(screens.WebView)...),
		router.WithGuard(requireSession, handler.Sales(screens.Sales)...),
		router.WithGuard(requireSession, handler.ShopProfile(screens.ShopProfile, summaryRefresh)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              config.Addr(),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// Handler expõe a cadeia completa de middlewares e rotas
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("bridge API starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("bridge API stopped unexpectedly")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("interrupt signal received")
	case <-ctx.Done():
		logrus.Info("application context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("shutting down bridge API")
	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("error during bridge API shutdown")
		return err
	}

	logrus.Info("bridge API stopped")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
