package config

import (
	"fmt"

	env "github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// EnvVars holds settings read from the environment.
type EnvVars struct {
	Port                 string `env:"PORT" envDefault:"8080"`
	AppName              string `env:"APP_NAME" envDefault:"JWT Session Service"`
	Env                  string `env:"ENV" envDefault:"DEV"`
	RedisURL             string `env:"REDIS_URL"`
	SigningSecret        string `env:"JWT_SIGNING_SECRET"`
	DefaultExpiryMinutes int    `env:"JWT_DEFAULT_EXPIRY_MINUTES" envDefault:"1"`
}

var _ EnvConfig = EnvVars{}
var _ JWTConfig = EnvVars{}

// LoadEnvVars parses the environment into an EnvVars value.
func LoadEnvVars() (EnvVars, error) {
	var vars EnvVars
	if err := env.Parse(&vars); err != nil {
		return EnvVars{}, errors.Wrap(err, "[LoadEnvVars] failed to parse environment")
	}
	return vars, nil
}

func (e EnvVars) GetPort() string {
	port := e.Port
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	return e.Env
}

func (e EnvVars) GetRedisURL() string {
	return e.RedisURL
}

func (e EnvVars) GetSigningSecret() string {
	return e.SigningSecret
}

func (e EnvVars) GetDefaultExpiryMinutes() int {
	return e.DefaultExpiryMinutes
}
