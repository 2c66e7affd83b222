package authenticating

import "github.com/vfg2006/mysanvi/internal/domain"

type Step string

const (
	StepPhoneInput    Step = "phone_input"
	StepOtpSent       Step = "otp_sent"
	StepAuthenticated Step = "authenticated"
)

// LoginState é o snapshot da tela de login
type LoginState struct {
	Step       Step               `json:"step"`
	Phone      string             `json:"phone,omitempty"`
	Loading    bool               `json:"loading"`
	Error      string             `json:"error,omitempty"`
	Message    string             `json:"message,omitempty"`
	DebugOTP   string             `json:"debug_otp,omitempty"`
	UserStatus *domain.UserStatus `json:"user_status,omitempty"`
}

func initialState() LoginState {
	return LoginState{Step: StepPhoneInput}
}
