package mandiidomain

import "github.com/vfg2006/mysanvi/internal/domain"

type UserStatusRequest struct {
	Phone string `json:"phone"`
}

// UserStatusResponse aceita "user_data" como alias legado de "profile"
type UserStatusResponse struct {
	Exists   bool     `json:"exists"`
	Profile  *Profile `json:"profile,omitempty"`
	UserData *Profile `json:"user_data,omitempty"`
}

type Profile struct {
	ID          *int    `json:"id,omitempty"`
	Name        *string `json:"name,omitempty"`
	IsShop      bool    `json:"is_shop"`
	OTPVerified bool    `json:"otp_verified"`
	ShopID      *int    `json:"shop_id,omitempty"`
}

// ToPresence converte a resposta em presença resolvida
func (r *UserStatusResponse) ToPresence() domain.BackendPresence {
	profile := r.Profile
	if profile == nil {
		profile = r.UserData
	}
	return domain.NewPresence(r.Exists, profile.toProfileData(), domain.PresenceResolved)
}

func (p *Profile) toProfileData() *domain.ProfileData {
	if p == nil {
		return nil
	}
	data := &domain.ProfileData{
		ID:            p.ID,
		IsShop:        p.IsShop,
		PhoneVerified: p.OTPVerified,
		ShopID:        p.ShopID,
	}
	if p.Name != nil {
		data.Name = *p.Name
	}
	return data
}
