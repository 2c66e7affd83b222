package community

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vfg2006/mysanvi/internal/config"
	"github.com/vfg2006/mysanvi/internal/screen"
	"github.com/vfg2006/mysanvi/pkg/apiErrors"
	"github.com/vfg2006/mysanvi/pkg/log"
)

const defaultTitle = "Mandii"

type BackAction string

const (
	BackGoBack BackAction = "go_back" // volta no histórico do navegador embutido
	BackExit   BackAction = "exit"    // fecha a tela
)

type WebViewState struct {
	StartURL   string `json:"start_url"`
	CurrentURL string `json:"current_url"`
	Title      string `json:"title"`
	Loading    bool   `json:"loading"`
	Failed     bool   `json:"failed"`
	Error      string `json:"error,omitempty"`
	// Subpage indica navegação para fora da página inicial
	Subpage bool `json:"subpage"`
}

// NavigationDecision é a resposta a uma tentativa de navegação do navegador embutido
type NavigationDecision struct {
	URL   string `json:"url"`
	Allow bool   `json:"allow"`
}

// Service controla o navegador embutido da comunidade. Só endereços que
// contêm o host permitido do Mandii podem ser abertos.
type Service struct {
	allowedHost string
	state       *screen.State[WebViewState]

	mu   sync.Mutex
	open bool
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		allowedHost: cfg.Mandii.AllowedHost,
		state:       screen.NewState(WebViewState{Title: defaultTitle}),
	}
}

func (s *Service) State() WebViewState {
	return s.state.Get()
}

func (s *Service) Subscribe(fn func(WebViewState)) func() {
	return s.state.Subscribe(fn)
}

// Allowed verifica o endereço contra o host permitido por substring
func (s *Service) Allowed(url string) bool {
	return url != "" && s.allowedHost != "" && strings.Contains(url, s.allowedHost)
}

// Open inicia a tela com o endereço de destino
func (s *Service) Open(url string) (WebViewState, error) {
	url = strings.TrimSpace(url)
	if !s.Allowed(url) {
		return s.State(), apiErrors.NewValidationError("url", "destination is outside the community site")
	}

	s.mu.Lock()
	s.open = true
	s.mu.Unlock()

	st := WebViewState{StartURL: url, CurrentURL: url, Title: defaultTitle, Loading: true}
	s.state.Set(st)
	log.L.WithField("url", url).Info("community web view opened")
	return st, nil
}

func (s *Service) Close() {
	s.mu.Lock()
	s.open = false
	s.mu.Unlock()
	s.state.Set(WebViewState{Title: defaultTitle})
}

// Navigate decide se o navegador pode seguir para url
func (s *Service) Navigate(url string) (NavigationDecision, error) {
	if err := s.ensureOpen(); err != nil {
		return NavigationDecision{}, err
	}

	decision := NavigationDecision{URL: url, Allow: s.Allowed(url)}
	if !decision.Allow {
		log.L.WithField("url", url).Warn("blocked navigation outside community site")
	}
	return decision, nil
}

func (s *Service) PageStarted(url string) (WebViewState, error) {
	if err := s.ensureOpen(); err != nil {
		return s.State(), err
	}
	return s.state.Update(func(st WebViewState) WebViewState {
		st.Loading = true
		st.Failed = false
		st.Error = ""
		if url != "" {
			st.CurrentURL = url
		}
		st.Subpage = st.CurrentURL != st.StartURL
		return st
	}), nil
}

// PageFinished encerra o carregamento; um título em branco mantém o anterior
func (s *Service) PageFinished(title string) (WebViewState, error) {
	if err := s.ensureOpen(); err != nil {
		return s.State(), err
	}
	return s.state.Update(func(st WebViewState) WebViewState {
		st.Loading = false
		if title = strings.TrimSpace(title); title != "" {
			st.Title = title
		}
		return st
	}), nil
}

func (s *Service) LoadFailed(description string) (WebViewState, error) {
	if err := s.ensureOpen(); err != nil {
		return s.State(), err
	}
	log.L.WithField("error", description).Warn("community page failed to load")
	return s.state.Update(func(st WebViewState) WebViewState {
		st.Loading = false
		st.Failed = true
		st.Error = "Failed to load page"
		return st
	}), nil
}

// Retry recarrega o endereço inicial
func (s *Service) Retry() (WebViewState, error) {
	if err := s.ensureOpen(); err != nil {
		return s.State(), err
	}
	return s.state.Update(func(st WebViewState) WebViewState {
		st.CurrentURL = st.StartURL
		st.Subpage = false
		st.Loading = true
		st.Failed = false
		st.Error = ""
		return st
	}), nil
}

// Reload recarrega a página atual
func (s *Service) Reload() (WebViewState, error) {
	if err := s.ensureOpen(); err != nil {
		return s.State(), err
	}
	return s.state.Update(func(st WebViewState) WebViewState {
		st.Loading = true
		st.Failed = false
		st.Error = ""
		return st
	}), nil
}

// Back volta no histórico enquanto o usuário estiver fora da página inicial
func (s *Service) Back() BackAction {
	st := s.State()
	if st.CurrentURL != "" && st.CurrentURL != st.StartURL {
		return BackGoBack
	}
	s.Close()
	return BackExit
}

func (s *Service) ensureOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return errors.Wrap(apiErrors.ErrInvalidState, "community web view not open")
	}
	return nil
}
