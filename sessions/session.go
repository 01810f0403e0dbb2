package sessions

// Tokens is the persisted session: a short-lived access token and a longer-lived
// refresh token, both opaque bearer strings issued by the backend.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Empty reports whether there is no access token to present
func (t Tokens) Empty() bool {
	return t.AccessToken == ""
}

// Store persists the token pair. Get returns nil, nil when no tokens are stored.
// Stores perform no validation of the tokens they hold.
type Store interface {
	Get() (*Tokens, error)
	Set(tokens Tokens) error
	Clear() error
}
