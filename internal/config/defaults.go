package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Default values applied before any other source.
const (
	DefaultVersion           = "1.0.0"
	DefaultPageSize          = 20
	DefaultPasswordMinLength = 8
	DefaultHTTPAddress       = "localhost:8000"
	DefaultDSN               = "file:db.sqlite3"
	DefaultReadTimeout       = 15 * time.Second
	DefaultWriteTimeout      = 15 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultRequestTimeout    = 10 * time.Second
	DefaultBaseURL           = "http://localhost:8000"
	DefaultDotEnvPath        = ".env"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version:  DefaultVersion,
			PageSize: DefaultPageSize,
		},
		Auth: Auth{
			BcryptCost:        bcrypt.DefaultCost,
			PasswordMinLength: DefaultPasswordMinLength,
		},
		Storage: Storage{
			DB: DB{
				DSN:          DefaultDSN,
				MaxOpenConns: 10,
				MaxIdleConns: 5,
			},
		},
		Server: Server{
			HTTPAddress:     DefaultHTTPAddress,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Adapter: Adapter{
			BaseURL:        DefaultBaseURL,
			RequestTimeout: DefaultRequestTimeout,
		},
	}
}
