package authenticating

import (
	"context"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/mysanvi/infrastructure/integrator/sager/sagerclient"
	"github.com/vfg2006/mysanvi/internal/domain"
	"github.com/vfg2006/mysanvi/internal/screen"
	"github.com/vfg2006/mysanvi/internal/session"
	"github.com/vfg2006/mysanvi/pkg/apiErrors"
	"github.com/vfg2006/mysanvi/pkg/log"
)

type Authenticator interface {
	State() LoginState
	Subscribe(fn func(LoginState)) func()
	SendOTP(ctx context.Context, phone string) (LoginState, error)
	VerifyOTP(ctx context.Context, code string) (LoginState, error)
	ResendOTP(ctx context.Context) (LoginState, error)
	ChangePhone() (LoginState, error)
	PasswordLogin(ctx context.Context, username, password string) (LoginState, error)
	RefreshSession(ctx context.Context) error
	Logout() LoginState
}

// Service conduz o fluxo PhoneInput → OtpSent → Authenticated
type Service struct {
	sager   sagerclient.Client
	session session.Manager
	state   *screen.State[LoginState]
	visit   screen.Visit
}

func NewService(sager sagerclient.Client, sessionManager session.Manager) *Service {
	s := &Service{
		sager:   sager,
		session: sessionManager,
		state:   screen.NewState(initialState()),
	}
	s.visit.Enter()
	return s
}

func (s *Service) State() LoginState {
	return s.state.Get()
}

func (s *Service) Subscribe(fn func(LoginState)) func() {
	return s.state.Subscribe(fn)
}

func (s *Service) SendOTP(ctx context.Context, phone string) (LoginState, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return s.reject(apiErrors.NewValidationError("phone", msgPhoneRequired), StepPhoneInput)
	}

	token, err := s.begin("send otp", StepPhoneInput)
	if err != nil {
		return s.State(), err
	}

	logger := log.ForContext(ctx).WithField("phone", log.MaskPhone(phone))
	result, err := s.sager.SendOTP(ctx, phone)
	if err != nil {
		logger.WithError(err).Warn("failed to send otp")
		return s.fail(token, actionSendOTP, err)
	}
	logger.Info("otp sent")

	return s.finish(token, func(st LoginState) LoginState {
		st.Step = StepOtpSent
		st.Phone = phone
		st.Message = result.Detail
		st.DebugOTP = result.DebugOTP
		return st
	})
}

func (s *Service) VerifyOTP(ctx context.Context, code string) (LoginState, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return s.reject(apiErrors.NewValidationError("code", msgCodeRequired), StepOtpSent)
	}

	token, err := s.begin("verify otp", StepOtpSent)
	if err != nil {
		return s.State(), err
	}

	phone := s.State().Phone
	logger := log.ForContext(ctx).WithField("phone", log.MaskPhone(phone))

	result, err := s.sager.VerifyOTP(ctx, phone, code)
	if err != nil {
		logger.WithError(err).Warn("otp verification failed")
		return s.fail(token, actionVerifyOTP, err)
	}

	if !s.visit.Current(token) {
		logger.Debug("discarding verification result after logout")
		return s.State(), nil
	}

	s.session.Save(result.Credential)
	logger.Info("otp verified, session saved")

	status := &domain.UserStatus{
		Phone:  phone,
		SaGer:  domain.NewPresence(true, result.Profile, domain.PresenceResolved),
		Mandii: domain.UncheckedPresence(),
	}

	return s.finish(token, func(st LoginState) LoginState {
		st.Step = StepAuthenticated
		st.Message = result.Detail
		st.DebugOTP = ""
		st.UserStatus = status
		return st
	})
}

// ResendOTP reenvia o código para o telefone atual sem mudar de etapa
func (s *Service) ResendOTP(ctx context.Context) (LoginState, error) {
	token, err := s.begin("resend otp", StepOtpSent)
	if err != nil {
		return s.State(), err
	}

	phone := s.State().Phone
	result, err := s.sager.SendOTP(ctx, phone)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("phone", log.MaskPhone(phone)).Warn("failed to resend otp")
		return s.fail(token, actionResendOTP, err)
	}

	return s.finish(token, func(st LoginState) LoginState {
		st.Message = result.Detail
		st.DebugOTP = result.DebugOTP
		return st
	})
}

// ChangePhone volta para a digitação do telefone mantendo o número anterior
func (s *Service) ChangePhone() (LoginState, error) {
	var err error
	st := s.state.Update(func(st LoginState) LoginState {
		if st.Step != StepOtpSent || st.Loading {
			err = errors.Wrapf(apiErrors.ErrInvalidState, "change phone from %s", st.Step)
			return st
		}
		st.Step = StepPhoneInput
		st.Error = ""
		st.Message = ""
		st.DebugOTP = ""
		return st
	})
	return st, err
}

// PasswordLogin é o caminho alternativo de autenticação por usuário e senha
func (s *Service) PasswordLogin(ctx context.Context, username, password string) (LoginState, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return s.reject(apiErrors.NewValidationError("", msgCredentialsRequired), StepPhoneInput)
	}

	token, err := s.begin("password login", StepPhoneInput)
	if err != nil {
		return s.State(), err
	}

	result, err := s.sager.Login(ctx, username, password)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("username", username).Warn("password login failed")
		return s.fail(token, actionLogin, err)
	}

	if !s.visit.Current(token) {
		return s.State(), nil
	}

	s.session.Save(result.Credential)
	log.ForContext(ctx).WithField("username", username).Info("password login succeeded")

	status := &domain.UserStatus{
		SaGer:  domain.NewPresence(true, result.Profile, domain.PresenceResolved),
		Mandii: domain.UncheckedPresence(),
	}
	if result.Profile != nil {
		status.Phone = result.Profile.Phone
	}

	return s.finish(token, func(st LoginState) LoginState {
		st.Step = StepAuthenticated
		st.Phone = status.Phone
		st.Message = result.Detail
		st.UserStatus = status
		return st
	})
}

// RefreshSession troca o access token usando o refresh token salvo.
// Nunca é disparado automaticamente.
func (s *Service) RefreshSession(ctx context.Context) error {
	refresh := s.session.RefreshToken()
	if refresh == "" {
		return apiErrors.ErrAuthenticationRequired
	}

	access, err := s.sager.RefreshAccessToken(ctx, refresh)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("failed to refresh access token")
		return errors.Wrap(err, actionRefresh)
	}

	if !s.session.UpdateAccessToken(access) {
		return apiErrors.ErrAuthenticationRequired
	}
	log.ForContext(ctx).Info("access token refreshed")
	return nil
}

// Logout limpa a sessão e reinicia o fluxo. Respostas em voo são descartadas.
func (s *Service) Logout() LoginState {
	s.session.Clear()
	s.visit.Leave()
	s.visit.Enter()
	s.state.Set(initialState())
	log.L.Info("session cleared")
	return s.State()
}

// begin marca a tela como carregando se a etapa atual permitir a ação
func (s *Service) begin(op string, steps ...Step) (uint64, error) {
	var err error
	s.state.Update(func(st LoginState) LoginState {
		if st.Loading || !slices.Contains(steps, st.Step) {
			err = errors.Wrapf(apiErrors.ErrInvalidState, "%s from %s", op, st.Step)
			return st
		}
		st.Loading = true
		st.Error = ""
		return st
	})
	return s.visit.Token(), err
}

func (s *Service) fail(token uint64, action string, err error) (LoginState, error) {
	if !s.visit.Current(token) {
		return s.State(), err
	}
	st := s.state.Update(func(st LoginState) LoginState {
		st.Loading = false
		st.Error = apiErrors.UserMessage(action, err)
		return st
	})
	return st, err
}

func (s *Service) finish(token uint64, apply func(LoginState) LoginState) (LoginState, error) {
	if !s.visit.Current(token) {
		return s.State(), nil
	}
	st := s.state.Update(func(st LoginState) LoginState {
		st = apply(st)
		st.Loading = false
		st.Error = ""
		return st
	})
	return st, nil
}

// reject registra um erro de validação local sem chamada de rede
func (s *Service) reject(err *apiErrors.ValidationError, step Step) (LoginState, error) {
	var stateErr error
	st := s.state.Update(func(st LoginState) LoginState {
		if st.Step != step || st.Loading {
			stateErr = errors.Wrapf(apiErrors.ErrInvalidState, "input for %s from %s", step, st.Step)
			return st
		}
		st.Error = err.Message
		return st
	})
	if stateErr != nil {
		return st, stateErr
	}
	return st, err
}
