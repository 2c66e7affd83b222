package dashboard

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/vfg2006/mysanvi/internal/config"
	"github.com/vfg2006/mysanvi/internal/domain"
	"github.com/vfg2006/mysanvi/internal/screen"
	"github.com/vfg2006/mysanvi/internal/session"
	"github.com/vfg2006/mysanvi/internal/usecases/resolving"
	"github.com/vfg2006/mysanvi/pkg/apiErrors"
	"github.com/vfg2006/mysanvi/pkg/log"
)

type DestinationKind string

const (
	DestinationShopProfile DestinationKind = "shop_profile" // tela interna de perfil da loja
	DestinationWebView     DestinationKind = "web_view"     // página da comunidade no navegador embutido
	DestinationExternal    DestinationKind = "external"     // página pública aberta fora do app
)

type Destination struct {
	Kind DestinationKind `json:"kind"`
	URL  string          `json:"url,omitempty"`
}

type DashboardState struct {
	UserStatus         *domain.UserStatus `json:"user_status,omitempty"`
	SaGerAuthenticated bool               `json:"sager_authenticated"`
	Resolving          bool               `json:"resolving"`
	Destination        *Destination       `json:"destination,omitempty"`
}

// Service decide para onde cada atalho do dashboard leva o usuário
type Service struct {
	resolver resolving.Resolver
	session  session.Manager
	sager    config.SaGer
	mandii   config.Mandii
	state    *screen.State[DashboardState]
	visit    screen.Visit
}

func NewService(cfg *config.Config, resolver resolving.Resolver, sessionManager session.Manager) *Service {
	return &Service{
		resolver: resolver,
		session:  sessionManager,
		sager:    cfg.SaGer,
		mandii:   cfg.Mandii,
		state:    screen.NewState(DashboardState{}),
	}
}

func (s *Service) State() DashboardState {
	return s.state.Get()
}

func (s *Service) Subscribe(fn func(DashboardState)) func() {
	return s.state.Subscribe(fn)
}

// Enter abre o dashboard com o status conhecido após o login
func (s *Service) Enter(status domain.UserStatus) DashboardState {
	s.visit.Enter()
	return s.state.Update(func(DashboardState) DashboardState {
		return DashboardState{
			UserStatus:         &status,
			SaGerAuthenticated: s.session.HasValidSession(),
		}
	})
}

func (s *Service) Leave() {
	s.visit.Leave()
	s.state.Set(DashboardState{})
}

// OpenCommunity consulta o Mandii e escolhe entre a página da loja e o feed.
// Qualquer falha leva ao feed.
func (s *Service) OpenCommunity(ctx context.Context) (Destination, error) {
	current := s.State()
	if current.UserStatus == nil || !s.visit.Active() {
		return Destination{}, errors.Wrap(apiErrors.ErrInvalidState, "dashboard not entered")
	}
	token := s.visit.Token()

	s.state.Update(func(st DashboardState) DashboardState {
		st.Resolving = true
		return st
	})

	logger := log.ForContext(ctx).WithField("phone", log.MaskPhone(current.UserStatus.Phone))

	dest := Destination{Kind: DestinationWebView, URL: s.mandii.FeedURL}
	status, err := s.resolver.Resolve(ctx, current.UserStatus.Phone, current.UserStatus.SaGer)
	if err != nil {
		logger.WithError(err).Warn("could not resolve user status, opening community feed")
	} else if shopID, ok := status.Mandii.ShopID(); ok {
		dest.URL = fmt.Sprintf(s.mandii.ShopURLTemplate, shopID)
	}

	if !s.visit.Current(token) {
		logger.Debug("dashboard left before community status resolved")
		return dest, nil
	}

	s.state.Update(func(st DashboardState) DashboardState {
		st.Resolving = false
		st.Destination = &dest
		if err == nil {
			st.UserStatus = &status
		}
		return st
	})
	logger.WithField("url", dest.URL).Info("community destination resolved")

	return dest, nil
}

// OpenPrimary leva ao perfil da loja se há sessão válida, senão à página pública
func (s *Service) OpenPrimary() Destination {
	dest := Destination{Kind: DestinationExternal, URL: s.sager.PublicURL}
	if s.session.HasValidSession() {
		dest = Destination{Kind: DestinationShopProfile}
	}

	s.state.Update(func(st DashboardState) DashboardState {
		st.SaGerAuthenticated = dest.Kind == DestinationShopProfile
		st.Destination = &dest
		return st
	})
	return dest
}
