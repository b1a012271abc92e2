package dto

// ProfileResponse describes the authenticated user's profile.
type ProfileResponse struct {
	ID          int64    `json:"id"`
	Login       string   `json:"login"`
	Role        string   `json:"role"`
	DisplayName string   `json:"displayName"`
	PartnerID   *int64   `json:"partnerId"`
	Categories  []string `json:"categories"`
	CustomItems []string `json:"customItems"`
}

// UpdateProfileRequest carries optional profile changes. Empty fields are
// left unchanged; a password change requires the current password.
type UpdateProfileRequest struct {
	DisplayName     string `json:"displayName"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// PushEndpointRequest registers the endpoint notified on relay events.
type PushEndpointRequest struct {
	Endpoint string `json:"endpoint"`
}
