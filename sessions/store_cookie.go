package sessions

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// CookieOptions names the two session cookies and their lifetimes
type CookieOptions struct {
	AccessName    string
	RefreshName   string
	AccessMaxAge  time.Duration
	RefreshMaxAge time.Duration
}

// Cookies binds CookieStores to requests
type Cookies struct {
	sealer *Sealer
	opts   CookieOptions
}

func NewCookies(sealer *Sealer, opts CookieOptions) *Cookies {
	return &Cookies{sealer: sealer, opts: opts}
}

// Sealer is the sealer the cookies are protected with
func (c *Cookies) Sealer() *Sealer {
	return c.sealer
}

// Bind returns a Store reading from r and writing Set-Cookie headers to w
func (c *Cookies) Bind(w http.ResponseWriter, r *http.Request) *CookieStore {
	return &CookieStore{w: w, r: r, sealer: c.sealer, opts: c.opts}
}

var _ Store = (*CookieStore)(nil)

// CookieStore keeps the token pair in two sealed cookies that are always written
// and cleared together. Writes are visible to later reads within the same request.
type CookieStore struct {
	w      http.ResponseWriter
	r      *http.Request
	sealer *Sealer
	opts   CookieOptions

	written bool
	pending *Tokens
}

func (s *CookieStore) Get() (*Tokens, error) {
	if s.written {
		if s.pending == nil {
			return nil, nil
		}
		t := *s.pending
		return &t, nil
	}

	access, ok := s.read(s.opts.AccessName)
	if !ok {
		return nil, nil
	}
	refresh, ok := s.read(s.opts.RefreshName)
	if !ok {
		return nil, nil
	}
	return &Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *CookieStore) Set(tokens Tokens) error {
	access, err := s.sealer.Seal(s.opts.AccessName, tokens.AccessToken)
	if err != nil {
		return err
	}
	refresh, err := s.sealer.Seal(s.opts.RefreshName, tokens.RefreshToken)
	if err != nil {
		return err
	}
	s.write(s.opts.AccessName, access, int(s.opts.AccessMaxAge.Seconds()))
	s.write(s.opts.RefreshName, refresh, int(s.opts.RefreshMaxAge.Seconds()))
	s.written = true
	s.pending = &tokens
	return nil
}

func (s *CookieStore) Clear() error {
	s.write(s.opts.AccessName, "", -1)
	s.write(s.opts.RefreshName, "", -1)
	s.written = true
	s.pending = nil
	return nil
}

func (s *CookieStore) read(name string) (string, bool) {
	cookie, err := s.r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	value, err := s.sealer.Open(name, cookie.Value)
	if err != nil {
		log.Debug().Str("cookie", name).Msg("Ignoring session cookie that failed to open")
		return "", false
	}
	return value, true
}

func (s *CookieStore) write(name, value string, maxAge int) {
	http.SetCookie(s.w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure(s.r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func isSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return r.Header.Get("X-Forwarded-Proto") == "https"
}
