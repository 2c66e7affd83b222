package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/mysanvi/infrastructure/integrator/mandii/mandiiclient"
	"github.com/vfg2006/mysanvi/infrastructure/integrator/sager/sagerclient"
	"github.com/vfg2006/mysanvi/infrastructure/integrator/transport"
	"github.com/vfg2006/mysanvi/internal/api"
	"github.com/vfg2006/mysanvi/internal/config"
	"github.com/vfg2006/mysanvi/internal/scheduler"
	"github.com/vfg2006/mysanvi/internal/session"
	"github.com/vfg2006/mysanvi/internal/usecases/authenticating"
	"github.com/vfg2006/mysanvi/internal/usecases/community"
	"github.com/vfg2006/mysanvi/internal/usecases/dashboard"
	"github.com/vfg2006/mysanvi/internal/usecases/ledger"
	"github.com/vfg2006/mysanvi/internal/usecases/resolving"
	"github.com/vfg2006/mysanvi/internal/usecases/shopprofile"
	"github.com/vfg2006/mysanvi/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel := log.Configure(cfg.App.LogLevel)
	logrus.Infof("log level set to %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Um único cliente HTTP, com os mesmos timeouts, atende os dois backends
	httpClient := transport.New(cfg.HTTP)

	sagerClient, err := sagerclient.NewClient(cfg, httpClient)
	if err != nil {
		logrus.WithError(err).Fatal("could not build SaGer client")
	}

	mandiiClient, err := mandiiclient.NewClient(cfg, httpClient)
	if err != nil {
		logrus.WithError(err).Fatal("could not build Mandii client")
	}

	store := session.NewStore()
	resolver := resolving.NewService(mandiiClient)
	shopProfile := shopprofile.NewService(cfg, sagerClient, store)

	screens := api.Screens{
		Login:       authenticating.NewService(sagerClient, store),
		Dashboard:   dashboard.NewService(cfg, resolver, store),
		Sales:       ledger.NewService(sagerClient, store),
		ShopProfile: shopProfile,
		WebView:     community.NewService(cfg),
	}

	summaryRefresh := scheduler.NewSummaryRefreshService(shopProfile, cfg)
	if err := summaryRefresh.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atualização do resumo")
	}

	server, err := api.New(cfg, store, screens, summaryRefresh)
	if err != nil {
		logrus.Fatal(err)
	}

	logrus.WithFields(logrus.Fields{
		"sager":  cfg.SaGer.BaseURL,
		"mandii": cfg.Mandii.BaseURL,
	}).Info("backends configured")

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}
