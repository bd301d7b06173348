package auth

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	defaultTimeout     = 15 * time.Second
	defaultServiceName = "upcominghub-native"
)

// Config configures a session Manager.
type Config struct {
	// BaseURL is the root of the identity API, e.g. "https://www.upcominghub.com".
	BaseURL string `validate:"required,url"`
	// Timeout bounds every identity call so a hung server cannot pin the refresh
	// coordinator indefinitely. A timed-out refresh follows the normal failure
	// path. Defaults to 15s.
	Timeout time.Duration
	// ServiceName labels spans and log entries. Defaults to "upcominghub-native".
	ServiceName string
}

func (cfg *Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(cfg)
}
