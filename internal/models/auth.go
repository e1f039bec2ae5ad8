package models

// LoginRequest is the credentials payload for /login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// RegisterRequest is the payload for /registro.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	Role     string `json:"role" binding:"required"`
}

// AuthResult is what the core backend returns on a successful login or
// registration: the opaque credential plus the user identity.
type AuthResult struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// LoginResponse is returned to the browser after a successful login.
type LoginResponse struct {
	Success  bool     `json:"success"`
	Session  *Session `json:"session,omitempty"`
	Redirect string   `json:"redirect,omitempty"`
}

// Profile is the viewer's own identity as shown in dashboard chrome.
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar,omitempty"`
	Role      Role   `json:"role"`
}
