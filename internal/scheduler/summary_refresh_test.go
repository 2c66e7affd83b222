package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/mysanvi/internal/config"
)

type stubRefresher struct {
	mu      sync.Mutex
	calls   int
	result  bool
	release chan struct{}
}

func (s *stubRefresher) RefreshAnalytics(ctx context.Context) bool {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.release != nil {
		<-s.release
	}
	return s.result
}

func (s *stubRefresher) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestService(refresher AnalyticsRefresher, enabled bool) *SummaryRefreshService {
	return NewSummaryRefreshService(refresher, &config.Config{
		SummaryRefresh: config.SummaryRefresh{CronSchedule: "*/15 * * * *", Enabled: enabled},
	})
}

func TestSummaryRefreshService_StartDisabled(t *testing.T) {
	refresher := &stubRefresher{}
	service := newTestService(refresher, false)

	require.NoError(t, service.Start(context.Background()))
	assert.False(t, service.scheduler.IsRunning())
}

func TestSummaryRefreshService_StartInvalidCron(t *testing.T) {
	service := NewSummaryRefreshService(&stubRefresher{}, &config.Config{
		SummaryRefresh: config.SummaryRefresh{CronSchedule: "not a cron", Enabled: true},
	})

	assert.Error(t, service.Start(context.Background()))
}

func TestSummaryRefreshService_StartStopsWithContext(t *testing.T) {
	service := newTestService(&stubRefresher{}, true)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, service.Start(ctx))
	assert.True(t, service.scheduler.IsRunning())

	cancel()
	assert.Eventually(t, func() bool { return !service.scheduler.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestSummaryRefreshService_Refresh(t *testing.T) {
	tests := []struct {
		name     string
		result   bool
		validate func(t *testing.T, s *SummaryRefreshService, ok bool)
	}{
		{
			name:   "tela aberta registra o horário",
			result: true,
			validate: func(t *testing.T, s *SummaryRefreshService, ok bool) {
				assert.True(t, ok)
				assert.False(t, s.LastRefreshAt().IsZero())
			},
		},
		{
			name:   "tela fechada não registra",
			result: false,
			validate: func(t *testing.T, s *SummaryRefreshService, ok bool) {
				assert.False(t, ok)
				assert.True(t, s.LastRefreshAt().IsZero())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(&stubRefresher{result: tt.result}, true)
			tt.validate(t, service, service.refresh(context.Background()))
		})
	}
}

func TestSummaryRefreshService_SkipsOverlappingRuns(t *testing.T) {
	refresher := &stubRefresher{result: true, release: make(chan struct{})}
	service := newTestService(refresher, true)

	done := make(chan bool)
	go func() { done <- service.refresh(context.Background()) }()

	assert.Eventually(t, func() bool { return refresher.Calls() == 1 }, time.Second, time.Millisecond)
	assert.False(t, service.refresh(context.Background()))

	close(refresher.release)
	assert.True(t, <-done)
	assert.Equal(t, 1, refresher.Calls())
}

func TestSummaryRefreshService_TriggerManualRefresh(t *testing.T) {
	refresher := &stubRefresher{result: true}
	service := newTestService(refresher, false)

	assert.False(t, service.Enabled())
	assert.True(t, service.TriggerManualRefresh(context.Background()))
	assert.Equal(t, 1, refresher.Calls())
	assert.False(t, service.LastRefreshAt().IsZero())
}
