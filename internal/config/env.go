package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv reads a [StructuredConfig] from the process environment through
// the `env` and `envPrefix` tags. Unset variables leave zero values so that
// the builder can merge the result over defaults. CORS origins are trimmed,
// so "a, b" and "a,b" are equivalent.
func parseEnv() (*StructuredConfig, error) {
	cfg, err := env.ParseAs[StructuredConfig]()
	if err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	origins := cfg.Server.CORSAllowedOrigins[:0]
	for _, origin := range cfg.Server.CORSAllowedOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		origins = nil
	}
	cfg.Server.CORSAllowedOrigins = origins

	return &cfg, nil
}
