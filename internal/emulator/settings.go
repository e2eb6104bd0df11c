// Package emulator runs the CDN edge functions in front of local origins so
// the site behaves in development the way it does behind CloudFront.
package emulator

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Settings configure the emulator from EDGE_* environment variables.
type Settings struct {
	ListenAddr    string `env:"EDGE_LISTEN_ADDR" envDefault:":8080" validate:"required,hostname_port"`
	WebsiteOrigin string `env:"EDGE_WEBSITE_ORIGIN" envDefault:"http://localhost:4200" validate:"required,http_url"`
	// ApiOrigin is the GraphQL endpoint; /graphql is not served when empty.
	ApiOrigin     string `env:"EDGE_API_ORIGIN" validate:"omitempty,http_url"`
	ApiKey        string `env:"EDGE_API_KEY" validate:"required_with=ApiOrigin"`
	WebsiteHash   string `env:"EDGE_WEBSITE_HASH" envDefault:"local" validate:"required"`
	PrimaryDomain string `env:"EDGE_PRIMARY_DOMAIN" validate:"omitempty,hostname_rfc1123"`
	// AccessLog is a file rotated by size. Empty logs to stderr.
	AccessLog           string `env:"EDGE_ACCESS_LOG"`
	AccessLogMaxSizeMB  int    `env:"EDGE_ACCESS_LOG_MAX_SIZE_MB" envDefault:"10" validate:"gt=0"`
	AccessLogMaxBackups int    `env:"EDGE_ACCESS_LOG_MAX_BACKUPS" envDefault:"3" validate:"gte=0"`
}

// LoadSettings reads and validates Settings from the environment.
func LoadSettings() (Settings, error) {
	s, err := env.ParseAs[Settings]()
	if err != nil {
		return Settings{}, fmt.Errorf("parsing emulator settings: %w", err)
	}
	if err := validator.New().Struct(s); err != nil {
		return Settings{}, fmt.Errorf("invalid emulator settings: %w", err)
	}
	return s, nil
}
