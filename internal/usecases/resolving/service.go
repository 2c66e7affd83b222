package resolving

import (
	"context"
	"strings"

	"github.com/vfg2006/mysanvi/infrastructure/integrator/mandii/mandiiclient"
	"github.com/vfg2006/mysanvi/internal/domain"
	"github.com/vfg2006/mysanvi/pkg/apiErrors"
	"github.com/vfg2006/mysanvi/pkg/log"
)

type Resolver interface {
	Resolve(ctx context.Context, phone string, sager domain.BackendPresence) (domain.UserStatus, error)
}

// Service combina a presença já conhecida no SaGer com a sondagem no Mandii
type Service struct {
	mandii mandiiclient.Client
}

func NewService(mandii mandiiclient.Client) *Service {
	return &Service{mandii: mandii}
}

// Resolve nunca falha por indisponibilidade do Mandii: qualquer erro da sondagem
// resulta em presença ausente. Só retorna erro para telefone em branco.
func (s *Service) Resolve(ctx context.Context, phone string, sager domain.BackendPresence) (domain.UserStatus, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return domain.UserStatus{}, apiErrors.NewValidationError("phone", "Please enter your phone number")
	}

	logger := log.ForContext(ctx).WithField("phone", log.MaskPhone(phone))

	mandii, err := s.mandii.CheckUserStatus(ctx, phone)
	if err != nil {
		logger.WithError(err).Warn("community status probe failed, treating user as absent")
		mandii = domain.AbsentPresence()
	} else {
		logger.WithField("exists", mandii.Exists).Debug("community status resolved")
	}

	return domain.UserStatus{
		Phone:  phone,
		SaGer:  domain.NewPresence(sager.Exists, sager.Profile, sager.State),
		Mandii: mandii,
	}, nil
}
