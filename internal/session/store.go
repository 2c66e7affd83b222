package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/mysanvi/internal/domain"
	"github.com/vfg2006/mysanvi/pkg/log"
)

// Store guarda o par de tokens do SaGer durante a vida do processo.
// Gravações são atômicas: leitores nunca veem um token novo com o outro antigo.
type Store struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

func NewStore() *Store {
	return &Store{}
}

// Save grava os dois tokens juntos
func (s *Store) Save(cred domain.Credential) {
	s.mu.Lock()
	s.accessToken = cred.AccessToken
	s.refreshToken = cred.RefreshToken
	s.mu.Unlock()

	logTokenClaims(cred.AccessToken)
}

// UpdateAccessToken troca apenas o access token, mantendo o refresh atual
func (s *Store) UpdateAccessToken(access string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if access == "" || s.refreshToken == "" {
		return false
	}
	s.accessToken = access
	return true
}

func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Credential retorna uma cópia consistente do par atual
func (s *Store) Credential() domain.Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Credential{AccessToken: s.accessToken, RefreshToken: s.refreshToken}
}

// AuthHeader retorna "Bearer <access>" ou vazio quando não há token
func (s *Store) AuthHeader() string {
	access := s.AccessToken()
	if access == "" {
		return ""
	}
	return "Bearer " + access
}

// HasValidSession é verdadeiro somente quando os dois tokens estão presentes.
// Nenhuma verificação de expiração é feita localmente.
func (s *Store) HasValidSession() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken != "" && s.refreshToken != ""
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.accessToken = ""
	s.refreshToken = ""
	s.mu.Unlock()
}

// logTokenClaims registra claims não verificadas apenas para diagnóstico
func logTokenClaims(token string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		log.L.Debug("access token is not a JWT, skipping claims")
		return
	}

	fields := log.Fields{}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		fields["sub"] = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		fields["exp"] = exp.Format(time.RFC3339)
	}
	log.L.WithFields(fields).Debug("session saved")
}

// Manager é o contrato do armazenamento de sessão consumido pelas telas
type Manager interface {
	Save(cred domain.Credential)
	UpdateAccessToken(access string) bool
	RefreshToken() string
	AuthHeader() string
	HasValidSession() bool
	Clear()
}

var _ Manager = (*Store)(nil)
