package mandiiclient

import (
	"context"
	"net/http"
	"strings"

	mandiidomain "github.com/vfg2006/mysanvi/infrastructure/integrator/mandii/domain"
	"github.com/vfg2006/mysanvi/infrastructure/integrator/transport"
	"github.com/vfg2006/mysanvi/internal/config"
	"github.com/vfg2006/mysanvi/internal/domain"
)

//go:generate mockgen -source=client.go -destination=../mocks/mock_client.go -package=mocks

// Client é o gateway do backend da comunidade (Mandii), usado apenas para sondar existência
type Client interface {
	CheckUserStatus(ctx context.Context, phone string) (domain.BackendPresence, error)
}

type MandiiClient struct {
	requester *transport.Requester
}

func NewClient(cfg *config.Config, httpClient *http.Client) (Client, error) {
	requester, err := transport.NewRequester(httpClient, cfg.Mandii.BaseURL)
	if err != nil {
		return nil, err
	}
	return &MandiiClient{requester: requester}, nil
}

func (c *MandiiClient) CheckUserStatus(ctx context.Context, phone string) (domain.BackendPresence, error) {
	var resp mandiidomain.UserStatusResponse
	err := c.requester.Do(ctx, transport.Call{
		Op:     "mandii.check_user_status",
		Method: http.MethodPost,
		Path:   "v1/check-user-status/",
		Body:   mandiidomain.UserStatusRequest{Phone: strings.TrimSpace(phone)},
		Out:    &resp,
	})
	if err != nil {
		return domain.BackendPresence{}, err
	}
	return resp.ToPresence(), nil
}
