// Package models defines the client-side data models of the Prompt Master
// CLI. JSON tags follow the REST API wire format.
package models

// Session is the auth payload returned by login, register and /auth/me.
// Token expiry is not stored: it is derived from the token's exp claim.
type Session struct {
	UserID      int64      `json:"user_id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	CreatedAt   Timestamp  `json:"created_at"`
	LastLogin   *Timestamp `json:"last_login"`
	AccessToken string     `json:"access_token,omitempty"`
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the register request body.
type Registration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// WithUser copies the user fields of other into s, keeping s's token when
// other carries none (the /auth/me response omits it).
func (s Session) WithUser(other Session) Session {
	token := s.AccessToken
	if other.AccessToken != "" {
		token = other.AccessToken
	}
	other.AccessToken = token
	return other
}
