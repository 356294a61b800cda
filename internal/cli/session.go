package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ionenergy/ionctl/internal/backend"
	"github.com/ionenergy/ionctl/internal/cache"
	"github.com/ionenergy/ionctl/internal/config"
	"github.com/ionenergy/ionctl/internal/intl"
	"github.com/ionenergy/ionctl/internal/notify"
	"github.com/ionenergy/ionctl/internal/pages"
)

// Output formats.
const (
	outputTable = "table"
	outputJSON  = "json"
)

// ErrOutputFormat is returned for an unknown --output value.
var ErrOutputFormat = errors.New("output format must be table or json")

// session is what a backend command works with: the effective configuration
// after flag overrides, a client for the backend, and a notifier printing to
// stderr in the configured language.
type session struct {
	cfg       *config.Config
	client    *backend.Client
	localizer *intl.Localizer
	notifier  notify.Notifier
	output    string
}

// newSession applies the persistent flags to a copy of the global
// configuration and builds the backend client.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg := *config.GetGlobalConfig()

	if v, _ := cmd.Flags().GetString("base-url"); v != "" {
		cfg.API.BaseURL = v
	}
	if v, _ := cmd.Flags().GetString("locale"); v != "" {
		cfg.Locale = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Output.DefaultFormat = v
	}
	if ttl, _ := cmd.Flags().GetInt("cache-ttl"); ttl > 0 {
		cfg.Cache.Enabled = true
		cfg.Cache.TTLSeconds = ttl
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []backend.Option{backend.WithTimeout(cfg.API.Timeout)}
	if cfg.Cache.Enabled {
		ttl, err := cache.ValidateTTL(cfg.Cache.TTLSeconds)
		if err != nil {
			return nil, fmt.Errorf("cache: %w", err)
		}
		store := cache.NewMemoryStore(true, ttl)
		opts = append(opts, backend.WithCache(store))
		logger.Debug().
			Ctx(cmd.Context()).
			Str("component", "cache").
			Str("ttl", cache.FormatDuration(store.TTL())).
			Msg("response cache enabled")
	}

	loc := intl.New(cfg.Locale)
	return &session{
		cfg:       &cfg,
		client:    backend.NewClient(cfg.API.BaseURL, opts...),
		localizer: loc,
		notifier:  notify.NewWriter(cmd.ErrOrStderr()),
		output:    cfg.Output.DefaultFormat,
	}, nil
}

// env returns the page environment of the session. Pages run headless.
func (s *session) env() pages.Env {
	return pages.Env{Client: s.client, Notifier: s.notifier, Localizer: s.localizer, Headless: true}
}

// json reports whether --output json is in effect.
func (s *session) json() bool {
	return s.output == outputJSON
}
