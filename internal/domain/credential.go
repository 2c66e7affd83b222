package domain

import "github.com/vfg2006/mysanvi/pkg/apiErrors"

// Credential é o par access/refresh obtido após verificação de OTP ou login.
// Os dois campos estão presentes ou ausentes juntos.
type Credential struct {
	AccessToken  string
	RefreshToken string
}

// NewCredential valida que nenhum dos tokens está vazio
func NewCredential(access, refresh string) (Credential, error) {
	if access == "" || refresh == "" {
		return Credential{}, apiErrors.NewValidationError("credential", "both access and refresh tokens are required")
	}
	return Credential{AccessToken: access, RefreshToken: refresh}, nil
}

func (c Credential) IsZero() bool {
	return c.AccessToken == "" && c.RefreshToken == ""
}

// AuthResult é o resultado de verifyOtp e login
type AuthResult struct {
	Credential Credential
	Profile    *ProfileData
	Detail     string
}

// OtpResult é o resultado de sendOtp. DebugOTP só é preenchido por backends em modo debug.
type OtpResult struct {
	Detail   string
	DebugOTP string
}
