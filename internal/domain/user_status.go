package domain

// ProfileData reúne os campos de perfil expostos pelos dois backends.
// Cada backend preenche apenas o subconjunto que conhece.
type ProfileData struct {
	ID            *int   `json:"id,omitempty"`
	Username      string `json:"username,omitempty"`
	Name          string `json:"name,omitempty"`
	Phone         string `json:"phone,omitempty"`
	ShopName      string `json:"shop_name,omitempty"`
	PhoneVerified bool   `json:"phone_verified"`
	IsShop        bool   `json:"is_shop"`
	ShopID        *int   `json:"shop_id,omitempty"`
}

type PresenceState string

const (
	PresenceUnchecked PresenceState = "unchecked" // backend ainda não consultado
	PresenceResolved  PresenceState = "resolved"  // resposta 2xx do backend
	PresenceFallback  PresenceState = "fallback"  // backend inacessível, tratado como ausente
)

// BackendPresence indica se um telefone existe em um backend.
// Profile é sempre nil quando Exists é falso.
type BackendPresence struct {
	Exists  bool          `json:"exists"`
	Profile *ProfileData  `json:"profile,omitempty"`
	State   PresenceState `json:"state"`
}

// NewPresence descarta o profile quando o usuário não existe
func NewPresence(exists bool, profile *ProfileData, state PresenceState) BackendPresence {
	if !exists {
		profile = nil
	}
	return BackendPresence{Exists: exists, Profile: profile, State: state}
}

// AbsentPresence é a presença usada quando o backend não pôde ser consultado
func AbsentPresence() BackendPresence {
	return NewPresence(false, nil, PresenceFallback)
}

// UncheckedPresence marca um backend ainda não consultado
func UncheckedPresence() BackendPresence {
	return NewPresence(false, nil, PresenceUnchecked)
}

// ShopID retorna o shop id do perfil, se existir
func (p BackendPresence) ShopID() (int, bool) {
	if !p.Exists || p.Profile == nil || p.Profile.ShopID == nil {
		return 0, false
	}
	return *p.Profile.ShopID, true
}

// UserStatus é a visão unificada de um telefone nos dois backends
type UserStatus struct {
	Phone  string          `json:"phone"`
	SaGer  BackendPresence `json:"sager"`
	Mandii BackendPresence `json:"mandii"`
}
