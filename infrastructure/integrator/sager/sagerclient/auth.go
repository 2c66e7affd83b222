package sagerclient

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	sagerdomain "github.com/vfg2006/mysanvi/infrastructure/integrator/sager/domain"
	"github.com/vfg2006/mysanvi/infrastructure/integrator/transport"
	"github.com/vfg2006/mysanvi/internal/domain"
	"github.com/vfg2006/mysanvi/pkg/apiErrors"
)

func (c *SaGerClient) SendOTP(ctx context.Context, phone string) (*domain.OtpResult, error) {
	var resp sagerdomain.OTPResponse
	err := c.requester.Do(ctx, transport.Call{
		Op:     "sager.send_otp",
		Method: http.MethodPost,
		Path:   "api/auth/otp/send/",
		Body:   sagerdomain.SendOTPRequest{Phone: strings.TrimSpace(phone)},
		Out:    &resp,
	})
	if err != nil {
		return nil, err
	}

	result := &domain.OtpResult{Detail: resp.Detail}
	if resp.OTP != nil {
		result.DebugOTP = *resp.OTP
	}
	return result, nil
}

func (c *SaGerClient) VerifyOTP(ctx context.Context, phone, code string) (*domain.AuthResult, error) {
	return c.authenticate(ctx, "sager.verify_otp", "api/auth/otp/verify/", sagerdomain.VerifyOTPRequest{
		Phone: strings.TrimSpace(phone),
		Code:  strings.TrimSpace(code),
	})
}

func (c *SaGerClient) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	return c.authenticate(ctx, "sager.login", "api/auth/token/", sagerdomain.LoginRequest{
		Username: strings.TrimSpace(username),
		Password: password,
	})
}

func (c *SaGerClient) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", apiErrors.ErrAuthenticationRequired
	}

	var resp sagerdomain.RefreshResponse
	err := c.requester.Do(ctx, transport.Call{
		Op:     "sager.refresh_token",
		Method: http.MethodPost,
		Path:   "api/auth/token/refresh/",
		Body:   sagerdomain.RefreshRequest{Refresh: refreshToken},
		Out:    &resp,
	})
	if err != nil {
		return "", err
	}
	if resp.Access == "" {
		return "", &apiErrors.DecodeError{Op: "sager.refresh_token", Target: "RefreshResponse", Err: errors.New("missing access token")}
	}
	return resp.Access, nil
}

func (c *SaGerClient) authenticate(ctx context.Context, op, path string, body any) (*domain.AuthResult, error) {
	var resp sagerdomain.AuthResponse
	err := c.requester.Do(ctx, transport.Call{
		Op:     op,
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
		Out:    &resp,
	})
	if err != nil {
		return nil, err
	}

	cred, err := domain.NewCredential(resp.Access, resp.Refresh)
	if err != nil {
		return nil, &apiErrors.DecodeError{Op: op, Target: "AuthResponse", Err: err}
	}

	result := &domain.AuthResult{
		Credential: cred,
		Profile:    resp.User.ToProfile(),
	}
	if resp.Detail != nil {
		result.Detail = *resp.Detail
	}
	return result, nil
}
