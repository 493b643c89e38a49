package server

import (
	"net/url"
	"strings"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to call mutating endpoints.
	ApiKey string `mapstructure:"api_key" default:""`
	// DefaultLanguage is the language served when a request names none.
	DefaultLanguage string `mapstructure:"default_language" default:"en"`
	// PublicURL is the externally visible base URL, used in generated links.
	PublicURL string `mapstructure:"public_url" default:"http://localhost:8080"`
}

// Address returns the listen address.
func (c Config) Address() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// AuthEnabled reports whether an API key is configured.
func (c Config) AuthEnabled() bool {
	return c.ApiKey != ""
}

// IsValidPublicURL checks that PublicURL is an absolute http(s) URL.
func (c Config) IsValidPublicURL() bool {
	u, err := url.Parse(c.PublicURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
