package config

import "time"

type Config interface {
	EnvConfig
	BackendConfig
	CorsConfig
	SessionConfig
	DraftConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type BackendConfig interface {
	GetAPIBaseURL() string
	GetAIBaseURL() string
	GetHTTPTimeout() time.Duration
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Backend
	Cors
	Session
	Drafts
}

func New() Config {
	return mainConfig{}
}
