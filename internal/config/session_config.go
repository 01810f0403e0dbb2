package config

import "time"

type SessionConfig interface {
	GetSessionSecret() string
	GetAccessCookieName() string
	GetRefreshCookieName() string
	GetAccessCookieMaxAge() time.Duration
	GetRefreshCookieMaxAge() time.Duration
	GetRemoteLogoutTimeout() time.Duration
	GetRetainOnNetworkError() bool
}

type DraftConfig interface {
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetDraftTTL() time.Duration
}

type Session struct{}

var _ SessionConfig = Session{}

// GetSessionSecret keys the cookie sealing. The default is only suitable for DEV.
func (Session) GetSessionSecret() string {
	return GetEnv("SESSION_SECRET", "rental-portal-dev-secret")
}

func (Session) GetAccessCookieName() string {
	return GetEnv("ACCESS_COOKIE_NAME", "rp_access_token")
}

func (Session) GetRefreshCookieName() string {
	return GetEnv("REFRESH_COOKIE_NAME", "rp_refresh_token")
}

func (Session) GetAccessCookieMaxAge() time.Duration {
	return GetDuration("ACCESS_COOKIE_MAX_AGE", 24*time.Hour)
}

func (Session) GetRefreshCookieMaxAge() time.Duration {
	return GetDuration("REFRESH_COOKIE_MAX_AGE", 7*24*time.Hour) // 7 days
}

func (Session) GetRemoteLogoutTimeout() time.Duration {
	return GetDuration("REMOTE_LOGOUT_TIMEOUT", 5*time.Second)
}

// GetRetainOnNetworkError keeps the session cookies when the backend cannot be
// reached during validation. Off by default: any failure signs the user out.
func (Session) GetRetainOnNetworkError() bool {
	return GetBool("SESSION_RETAIN_ON_NETWORK_ERROR", false)
}

type Drafts struct{}

var _ DraftConfig = Drafts{}

// GetRedisAddr is empty by default, which keeps listing drafts in memory.
func (Drafts) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "")
}

func (Drafts) GetRedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}

func (Drafts) GetRedisDB() int {
	return GetInt("REDIS_DB", 0)
}

func (Drafts) GetDraftTTL() time.Duration {
	return GetDuration("DRAFT_TTL", 72*time.Hour)
}
