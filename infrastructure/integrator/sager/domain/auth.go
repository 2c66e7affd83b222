package sagerdomain

import "github.com/vfg2006/mysanvi/internal/domain"

type SendOTPRequest struct {
	Phone string `json:"phone"`
}

type OTPResponse struct {
	Detail string  `json:"detail"`
	OTP    *string `json:"otp,omitempty"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type RefreshResponse struct {
	Access string `json:"access"`
}

// AuthResponse é o corpo retornado por verify e token
type AuthResponse struct {
	Access  string  `json:"access"`
	Refresh string  `json:"refresh"`
	User    *User   `json:"user,omitempty"`
	Detail  *string `json:"detail,omitempty"`
}

type User struct {
	ID              int     `json:"id"`
	Username        string  `json:"username"`
	Phone           *string `json:"phone,omitempty"`
	Name            *string `json:"name,omitempty"`
	ShopName        *string `json:"shop_name,omitempty"`
	IsPhoneVerified bool    `json:"is_phone_verified"`
}

// ToProfile converte o usuário do SaGer para o perfil unificado
func (u *User) ToProfile() *domain.ProfileData {
	if u == nil {
		return nil
	}
	id := u.ID
	return &domain.ProfileData{
		ID:            &id,
		Username:      u.Username,
		Name:          deref(u.Name),
		Phone:         deref(u.Phone),
		ShopName:      deref(u.ShopName),
		PhoneVerified: u.IsPhoneVerified,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
