package shopprofile

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/mysanvi/infrastructure/integrator/sager/sagerclient"
	"github.com/vfg2006/mysanvi/internal/config"
	"github.com/vfg2006/mysanvi/internal/domain"
	"github.com/vfg2006/mysanvi/internal/screen"
	"github.com/vfg2006/mysanvi/internal/session"
	"github.com/vfg2006/mysanvi/pkg/apiErrors"
	"github.com/vfg2006/mysanvi/pkg/log"
)

const (
	actionLoad    = "Failed to load data"
	actionCompare = "Failed to compare product"
)

// Service é a tela de perfil da loja. Cada aba tem seu próprio estado de carga.
type Service struct {
	sager   sagerclient.Client
	session session.Manager
	cfg     config.ShopProfile
	state   *screen.State[ProfileState]
	visit   screen.Visit
}

func NewService(cfg *config.Config, sager sagerclient.Client, sessionManager session.Manager) *Service {
	return &Service{
		sager:   sager,
		session: sessionManager,
		cfg:     cfg.ShopProfile,
		state:   screen.NewState(initialState()),
	}
}

func (s *Service) State() ProfileState {
	return s.state.Get()
}

func (s *Service) Subscribe(fn func(ProfileState)) func() {
	return s.state.Subscribe(fn)
}

// Enter abre a tela na aba Overview e busca o resumo de hoje
func (s *Service) Enter(ctx context.Context) ProfileState {
	token := s.visit.Enter()
	s.state.Set(initialState())
	s.loadToday(ctx, token)
	return s.State()
}

func (s *Service) Leave() {
	s.visit.Leave()
}

// Active indica se a tela está aberta
func (s *Service) Active() bool {
	return s.visit.Active()
}

// SelectTab troca de aba e busca os dados dela; Overview busca apenas o resumo de hoje
func (s *Service) SelectTab(ctx context.Context, tab Tab) (ProfileState, error) {
	if !tab.Valid() {
		return s.State(), apiErrors.NewValidationError("tab", "unknown tab "+string(tab))
	}
	if !s.visit.Active() {
		return s.State(), errors.Wrap(apiErrors.ErrInvalidState, "shop profile not open")
	}

	s.state.Update(func(st ProfileState) ProfileState {
		st.Active = tab
		return st
	})

	if tab == TabOverview {
		s.loadToday(ctx, s.visit.Token())
	} else {
		s.loadTab(ctx, s.visit.Token(), tab)
	}
	return s.State(), nil
}

// Refresh recarrega a aba ativa
func (s *Service) Refresh(ctx context.Context) (ProfileState, error) {
	if !s.visit.Active() {
		return s.State(), errors.Wrap(apiErrors.ErrInvalidState, "shop profile not open")
	}

	token := s.visit.Token()
	if tab := s.State().Active; tab == TabOverview {
		s.loadToday(ctx, token)
	} else {
		s.loadTab(ctx, token, tab)
	}
	return s.State(), nil
}

// RefreshAnalytics recarrega a aba Analytics se a tela estiver aberta com sessão válida
// e nenhuma carga da aba estiver em andamento
func (s *Service) RefreshAnalytics(ctx context.Context) bool {
	if !s.visit.Active() || !s.session.HasValidSession() {
		return false
	}
	if s.State().Analytics.IsLoading() {
		log.ForContext(ctx).Debug("analytics already loading, skipping refresh")
		return false
	}
	s.loadTab(ctx, s.visit.Token(), TabAnalytics)
	return true
}

func (s *Service) loadTab(ctx context.Context, token uint64, tab Tab) {
	s.apply(token, func(st ProfileState) ProfileState {
		return setLoading(st, tab)
	})

	authHeader := s.session.AuthHeader()
	logger := log.ForContext(ctx).WithField("tab", tab)

	var (
		update func(ProfileState) ProfileState
		err    error
	)

	switch tab {
	case TabSales:
		var records []domain.SalesRecord
		if records, err = s.sager.ListSales(ctx, authHeader); err == nil {
			update = func(st ProfileState) ProfileState { st.Sales = screen.Loaded(records); return st }
		}
	case TabDebts:
		var debts []domain.DebtSummary
		if debts, err = s.sager.ListDebts(ctx, authHeader, domain.DebtQuery{}); err == nil {
			update = func(st ProfileState) ProfileState { st.Debts = screen.Loaded(debts); return st }
		}
	case TabPredictions:
		var predictions []domain.Prediction
		if predictions, err = s.sager.ListPredictions(ctx, authHeader); err == nil {
			update = func(st ProfileState) ProfileState { st.Predictions = screen.Loaded(predictions); return st }
		}
	case TabAnalytics:
		var summary *domain.DailySummary
		if summary, err = s.sager.GetDailySummary(ctx, authHeader, s.summaryQuery(1)); err == nil {
			update = func(st ProfileState) ProfileState {
				st.Analytics = screen.Loaded(summary)
				if _, ok := summary.Product(st.ExpandedProduct); !ok {
					st.ExpandedProduct = ""
					st.Comparison = nil
				}
				return st
			}
		}
	}

	if err != nil {
		logger.WithError(err).Warn("failed to load tab")
		message := apiErrors.UserMessage(actionLoad, err)
		update = func(st ProfileState) ProfileState { return setFailed(st, tab, message) }
	} else {
		logger.Debug("tab loaded")
	}

	if !s.apply(token, update) {
		logger.Debug("shop profile left, discarding response")
	}
}

// loadToday busca o resumo de um dia. Sem sessão mostra zero sem chamar o backend;
// qualquer falha usa o valor fixo configurado.
func (s *Service) loadToday(ctx context.Context, token uint64) {
	figure := TodayFigure{Amount: decimal.Zero}

	authHeader := s.session.AuthHeader()
	if authHeader == "" {
		log.ForContext(ctx).Debug("no session, showing empty today's summary")
		s.apply(token, func(st ProfileState) ProfileState {
			st.Today = screen.Loaded(figure)
			return st
		})
		return
	}

	s.apply(token, func(st ProfileState) ProfileState {
		st.Today = screen.Loading[TodayFigure]()
		return st
	})

	summary, err := s.sager.GetDailySummary(ctx, authHeader, domain.SummaryQuery{Days: 1})
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("failed to load today's summary, using fallback figure")
		figure = TodayFigure{
			Amount:   decimal.NewFromFloat(s.cfg.OverviewFallbackAmount),
			Count:    s.cfg.OverviewFallbackCount,
			Fallback: true,
		}
	} else if last, ok := summary.LastTotal(); ok {
		figure = TodayFigure{Amount: last.TotalAmount, Count: last.TotalCount}
	}

	s.apply(token, func(st ProfileState) ProfileState {
		st.Today = screen.Loaded(figure)
		return st
	})
}

func (s *Service) summaryQuery(multiplier int) domain.SummaryQuery {
	q := domain.SummaryQuery{Days: s.cfg.SummaryDays, Top: s.cfg.SummaryTop}.WithDefaults()
	q.Days *= multiplier
	return q
}

// apply altera o estado somente se a visita do token ainda estiver em andamento
func (s *Service) apply(token uint64, fn func(ProfileState) ProfileState) bool {
	applied := false
	s.state.Update(func(st ProfileState) ProfileState {
		if !s.visit.Current(token) {
			return st
		}
		applied = true
		return fn(st)
	})
	return applied
}

func setLoading(st ProfileState, tab Tab) ProfileState {
	switch tab {
	case TabSales:
		st.Sales = screen.Loading[[]domain.SalesRecord]()
	case TabDebts:
		st.Debts = screen.Loading[[]domain.DebtSummary]()
	case TabPredictions:
		st.Predictions = screen.Loading[[]domain.Prediction]()
	case TabAnalytics:
		st.Analytics = screen.Loading[*domain.DailySummary]()
	}
	return st
}

func setFailed(st ProfileState, tab Tab, message string) ProfileState {
	switch tab {
	case TabSales:
		st.Sales = screen.Failed[[]domain.SalesRecord](message)
	case TabDebts:
		st.Debts = screen.Failed[[]domain.DebtSummary](message)
	case TabPredictions:
		st.Predictions = screen.Failed[[]domain.Prediction](message)
	case TabAnalytics:
		st.Analytics = screen.Failed[*domain.DailySummary](message)
	}
	return st
}
