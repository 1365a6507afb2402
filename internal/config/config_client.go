package config

import (
	"fmt"
	"os"
)

// ClientConfig is the configuration of the seeding command, assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport settings.
	Adapter Adapter
}

// GetClientConfig builds and validates the client view of the merged
// configuration. Server settings are not validated here.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withDotEnv().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{Adapter: cfg.Adapter}

	return clientCfg, clientCfg.validate()
}
