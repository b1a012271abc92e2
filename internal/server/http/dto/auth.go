package dto

// RegisterRequest describes the sign-up payload.
type RegisterRequest struct {
	Login       string `json:"login"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName"`
}

// LoginRequest describes the login payload.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}
