package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays configuration values from environment variables.
// Variables that are unset leave the current values untouched.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
