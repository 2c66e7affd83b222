package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/mysanvi/internal/config"
)

// AnalyticsRefresher é a tela que recarrega a aba Analytics sob demanda
type AnalyticsRefresher interface {
	RefreshAnalytics(ctx context.Context) bool
}

// SummaryRefreshService recarrega periodicamente a aba Analytics do perfil da loja
type SummaryRefreshService struct {
	scheduler *gocron.Scheduler
	config    config.SummaryRefresh
	refresher AnalyticsRefresher

	runMutex      sync.Mutex
	running       bool
	lastRefreshAt time.Time
}

func NewSummaryRefreshService(refresher AnalyticsRefresher, appConfig *config.Config) *SummaryRefreshService {
	logrus.WithFields(logrus.Fields{
		"cron_schedule": appConfig.SummaryRefresh.CronSchedule,
		"enabled":       appConfig.SummaryRefresh.Enabled,
	}).Info("Configuração do agendador de atualização do resumo carregada")

	return &SummaryRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    appConfig.SummaryRefresh,
		refresher: refresher,
	}
}

// Start agenda a atualização e para o agendador quando ctx é cancelado
func (s *SummaryRefreshService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Atualização agendada do resumo desabilitada por configuração")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.refresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização do resumo: %w", err)
	}

	s.scheduler.StartAsync()
	logrus.WithField("cron", s.config.CronSchedule).Info("Agendador de atualização do resumo iniciado")

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de atualização do resumo")
		s.scheduler.Stop()
	}()

	return nil
}

// refresh ignora execuções sobrepostas
func (s *SummaryRefreshService) refresh(ctx context.Context) bool {
	s.runMutex.Lock()
	if s.running {
		s.runMutex.Unlock()
		logrus.Info("Atualização do resumo já em andamento, ignorando")
		return false
	}
	s.running = true
	s.runMutex.Unlock()

	defer func() {
		s.runMutex.Lock()
		s.running = false
		s.runMutex.Unlock()
	}()

	start := time.Now()
	refreshed := s.refresher.RefreshAnalytics(ctx)
	if !refreshed {
		logrus.Debug("Perfil da loja fechado ou sem sessão, atualização ignorada")
		return false
	}

	s.runMutex.Lock()
	s.lastRefreshAt = time.Now()
	s.runMutex.Unlock()

	logrus.WithField("duration_ms", time.Since(start).Milliseconds()).Info("Resumo diário atualizado")
	return true
}

// LastRefreshAt retorna o horário da última atualização bem sucedida
func (s *SummaryRefreshService) LastRefreshAt() time.Time {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()
	return s.lastRefreshAt
}

// TriggerManualRefresh executa a atualização fora do agendamento, mesmo com o agendador desabilitado
func (s *SummaryRefreshService) TriggerManualRefresh(ctx context.Context) bool {
	logrus.Info("Atualização manual do resumo solicitada")
	return s.refresh(ctx)
}

// Enabled informa se o agendamento está ativo
func (s *SummaryRefreshService) Enabled() bool {
	return s.config.Enabled
}
