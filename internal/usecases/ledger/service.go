package ledger

import (
	"context"
	"slices"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/mysanvi/infrastructure/integrator/sager/sagerclient"
	"github.com/vfg2006/mysanvi/internal/domain"
	"github.com/vfg2006/mysanvi/internal/screen"
	"github.com/vfg2006/mysanvi/internal/session"
	"github.com/vfg2006/mysanvi/pkg/apiErrors"
	"github.com/vfg2006/mysanvi/pkg/log"
	"github.com/vfg2006/mysanvi/pkg/utils"
)

const (
	actionLoad   = "Failed to load sales"
	actionAdd    = "Failed to add sale"
	actionUpdate = "Failed to update sale"
	actionDelete = "Failed to delete sale"
)

type FormState struct {
	Submitting bool   `json:"submitting"`
	Error      string `json:"error,omitempty"`
}

type LedgerState struct {
	Records screen.Loadable[[]domain.SalesRecord] `json:"records"`
	Form    FormState                             `json:"form"`
}

type Option func(*Service)

// WithClock substitui o relógio usado para datar novas vendas
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service é a tela de vendas: lista, inclusão, edição e exclusão
type Service struct {
	sager   sagerclient.Client
	session session.Manager
	state   *screen.State[LedgerState]
	visit   screen.Visit
	now     func() time.Time
}

func NewService(sager sagerclient.Client, sessionManager session.Manager, opts ...Option) *Service {
	s := &Service{
		sager:   sager,
		session: sessionManager,
		state:   screen.NewState(LedgerState{Records: screen.Idle[[]domain.SalesRecord]()}),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) State() LedgerState {
	return s.state.Get()
}

func (s *Service) Subscribe(fn func(LedgerState)) func() {
	return s.state.Subscribe(fn)
}

// Enter abre a tela e busca a lista completa
func (s *Service) Enter(ctx context.Context) LedgerState {
	token := s.visit.Enter()
	s.state.Set(LedgerState{Records: screen.Loading[[]domain.SalesRecord]()})
	return s.load(ctx, token)
}

// Retry volta a Loading e busca novamente
func (s *Service) Retry(ctx context.Context) (LedgerState, error) {
	if !s.visit.Active() {
		return s.State(), errors.Wrap(apiErrors.ErrInvalidState, "sales screen not open")
	}
	token := s.visit.Token()
	s.state.Update(func(st LedgerState) LedgerState {
		st.Records = screen.Loading[[]domain.SalesRecord]()
		return st
	})
	return s.load(ctx, token), nil
}

func (s *Service) Leave() {
	s.visit.Leave()
}

func (s *Service) load(ctx context.Context, token uint64) LedgerState {
	logger := log.ForContext(ctx)

	var result screen.Loadable[[]domain.SalesRecord]
	authHeader := s.session.AuthHeader()
	if authHeader == "" {
		result = screen.Failed[[]domain.SalesRecord](apiErrors.MsgNoAuthToken)
	} else if records, err := s.sager.ListSales(ctx, authHeader); err != nil {
		logger.WithError(err).Warn("failed to load sales")
		result = screen.Failed[[]domain.SalesRecord](apiErrors.UserMessage(actionLoad, err))
	} else {
		logger.WithField("count", len(records)).Debug("sales loaded")
		result = screen.Loaded(records)
	}

	if !s.visit.Current(token) {
		logger.Debug("sales screen left, discarding response")
		return s.State()
	}

	return s.state.Update(func(st LedgerState) LedgerState {
		st.Records = result
		return st
	})
}

// AddSale valida o formulário antes de qualquer chamada e, em caso de sucesso,
// acrescenta exatamente um registro à lista em memória
func (s *Service) AddSale(ctx context.Context, form domain.SaleForm) (*domain.SalesRecord, error) {
	input, err := s.prepare(actionAdd, form)
	if err != nil {
		return nil, err
	}
	token := s.visit.Token()

	record, err := s.sager.CreateSale(ctx, s.session.AuthHeader(), input)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("failed to add sale")
		s.formFailed(actionAdd, err)
		return nil, err
	}
	log.ForContext(ctx).WithField("customer_id", record.CustomerID).Info("sale added")

	s.applyIfCurrent(token, func(records []domain.SalesRecord) []domain.SalesRecord {
		return append(slices.Clone(records), *record)
	})
	return record, nil
}

// UpdateSale substitui o registro correspondente mantendo sua posição
func (s *Service) UpdateSale(ctx context.Context, id int, form domain.SaleForm) (*domain.SalesRecord, error) {
	input, err := s.prepare(actionUpdate, form)
	if err != nil {
		return nil, err
	}
	token := s.visit.Token()

	record, err := s.sager.UpdateSale(ctx, s.session.AuthHeader(), id, input)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("sale_id", id).Warn("failed to update sale")
		s.formFailed(actionUpdate, err)
		return nil, err
	}

	s.applyIfCurrent(token, func(records []domain.SalesRecord) []domain.SalesRecord {
		out := slices.Clone(records)
		for i := range out {
			if out[i].ID != nil && *out[i].ID == id {
				out[i] = *record
			}
		}
		return out
	})
	return record, nil
}

func (s *Service) DeleteSale(ctx context.Context, id int) error {
	if _, err := s.beginSubmit(); err != nil {
		return err
	}
	token := s.visit.Token()

	authHeader := s.session.AuthHeader()
	if authHeader == "" {
		s.formFailed(actionDelete, apiErrors.ErrAuthenticationRequired)
		return apiErrors.ErrAuthenticationRequired
	}

	if err := s.sager.DeleteSale(ctx, authHeader, id); err != nil {
		log.ForContext(ctx).WithError(err).WithField("sale_id", id).Warn("failed to delete sale")
		s.formFailed(actionDelete, err)
		return err
	}

	s.applyIfCurrent(token, func(records []domain.SalesRecord) []domain.SalesRecord {
		return slices.DeleteFunc(slices.Clone(records), func(r domain.SalesRecord) bool {
			return r.ID != nil && *r.ID == id
		})
	})
	return nil
}

// prepare bloqueia envios concorrentes, valida o formulário e exige sessão
func (s *Service) prepare(action string, form domain.SaleForm) (domain.SalesRecordInput, error) {
	if _, err := s.beginSubmit(); err != nil {
		return domain.SalesRecordInput{}, err
	}

	input, err := form.ToInput(utils.FormatDate(s.now()))
	if err != nil {
		s.formFailed(action, err)
		return domain.SalesRecordInput{}, err
	}

	if s.session.AuthHeader() == "" {
		s.formFailed(action, apiErrors.ErrAuthenticationRequired)
		return domain.SalesRecordInput{}, apiErrors.ErrAuthenticationRequired
	}

	return input, nil
}

func (s *Service) beginSubmit() (LedgerState, error) {
	var err error
	st := s.state.Update(func(st LedgerState) LedgerState {
		if st.Form.Submitting {
			err = errors.Wrap(apiErrors.ErrInvalidState, "sale form already submitting")
			return st
		}
		st.Form = FormState{Submitting: true}
		return st
	})
	return st, err
}

func (s *Service) formFailed(action string, err error) {
	s.state.Update(func(st LedgerState) LedgerState {
		st.Form = FormState{Error: apiErrors.UserMessage(action, err)}
		return st
	})
}

// applyIfCurrent altera a lista carregada; fora da visita ou sem lista carregada só libera o formulário
func (s *Service) applyIfCurrent(token uint64, fn func([]domain.SalesRecord) []domain.SalesRecord) {
	s.state.Update(func(st LedgerState) LedgerState {
		st.Form = FormState{}
		if s.visit.Current(token) && st.Records.Status == screen.StatusLoaded {
			st.Records = screen.Loaded(fn(st.Records.Data))
		}
		return st
	})
}
