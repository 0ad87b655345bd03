package config

// Config aggregates the read-only settings the service is wired with.
type Config interface {
	EnvConfig
	JWTConfig
}

// EnvConfig covers deployment-level settings.
type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetRedisURL() string
}

// JWTConfig covers token signing and seed expiry settings.
type JWTConfig interface {
	GetSigningSecret() string
	GetDefaultExpiryMinutes() int
}

type mainConfig struct {
	EnvVars
}

// New loads the configuration from the environment.
func New() (Config, error) {
	vars, err := LoadEnvVars()
	if err != nil {
		return nil, err
	}
	return mainConfig{EnvVars: vars}, nil
}
