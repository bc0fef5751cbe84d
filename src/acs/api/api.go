// Package api exposes the account console over HTTP.
package api

import (
	"github.com/bitswalk/acs/src/acs/auth"
	"github.com/bitswalk/acs/src/acs/db/migrations"
	"github.com/bitswalk/acs/src/common/logs"
	"github.com/bitswalk/acs/src/common/version"
)

// Package-level logger, can be set via SetLogger
var log = logs.NewDiscard()

// SetLogger sets the package-level logger
func SetLogger(l *logs.Logger) {
	log = l
}

// Config holds the services the API delegates to
type Config struct {
	Users      *auth.Service
	Roles      *auth.RoleService
	Migrations *migrations.Engine
	Version    *version.Info
	RateLimit  RateLimitConfig
}

// API holds the HTTP handlers
type API struct {
	users       *auth.Service
	roles       *auth.RoleService
	migrations  *migrations.Engine
	version     *version.Info
	rateLimiter *RateLimiter
}

// New creates a new API instance
func New(cfg Config) *API {
	v := cfg.Version
	if v == nil {
		v = version.New("", "", "")
	}

	a := &API{
		users:      cfg.Users,
		roles:      cfg.Roles,
		migrations: cfg.Migrations,
		version:    v,
	}
	if cfg.RateLimit.Enabled {
		a.rateLimiter = NewRateLimiter(cfg.RateLimit)
	}
	return a
}

// Close stops background work owned by the API
func (a *API) Close() {
	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}
}
