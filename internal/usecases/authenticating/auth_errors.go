package authenticating

// Mensagens exibidas ao usuário
const (
	msgPhoneRequired       = "Please enter your phone number"
	msgCodeRequired        = "Please enter the verification code"
	msgCredentialsRequired = "Please enter username and password"

	actionSendOTP   = "Failed to send OTP"
	actionVerifyOTP = "Verification failed"
	actionResendOTP = "Failed to resend OTP"
	actionLogin     = "Login failed"
	actionRefresh   = "Failed to refresh session"
)
