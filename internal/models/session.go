package models

// Session represents a signed-in visitor, as carried in the session cookie
type Session struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Picture   string `json:"picture,omitempty"`
	ExpiresAt int64  `json:"expiresAt"`
	IssuedAt  int64  `json:"issuedAt"`
}

// GoogleProfile is the subset of the Google userinfo response we keep
type GoogleProfile struct {
	ID            string
	Email         string
	VerifiedEmail bool
	Name          string
	Picture       string
}

// SessionResponse is returned by the session endpoint
type SessionResponse struct {
	Authenticated bool     `json:"authenticated"`
	Session       *Session `json:"session,omitempty"`
}
