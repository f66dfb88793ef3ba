package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// AppConfig bundles everything the server needs at startup. All values come
// from the environment; the upstream API location and token have no sane
// defaults and must be present.
type AppConfig struct {
	ListenAddr      string        `env:"LISTEN_ADDR"`
	Port            string        `env:"PORT" envDefault:"8080"`
	GinMode         string        `env:"GIN_MODE" envDefault:"release"`
	UpstreamBaseURL string        `env:"UPSTREAM_BASE_URL,required"`
	UpstreamToken   string        `env:"UPSTREAM_TOKEN,required"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"12s"`
	DatabasePath    string        `env:"DATABASE_PATH" envDefault:"collegescope.db"`
	SessionSecret   string        `env:"SESSION_SECRET" envDefault:"collegescope-dev-secret"`
	SiteBaseURL     string        `env:"SITE_BASE_URL" envDefault:"https://www.collegescope.in"`
	TemplateGlob    string        `env:"TEMPLATE_GLOB" envDefault:"web/template/*.html"`
	StaticDir       string        `env:"STATIC_DIR" envDefault:"web/static"`
}

// Load parses the environment into an AppConfig and validates it once at
// process start, so a missing token fails the boot instead of the first
// request that needs it.
func Load() (AppConfig, error) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return AppConfig{}, err
	}

	cfg.UpstreamBaseURL = strings.TrimRight(strings.TrimSpace(cfg.UpstreamBaseURL), "/")
	cfg.UpstreamToken = strings.TrimSpace(cfg.UpstreamToken)
	cfg.SiteBaseURL = strings.TrimRight(strings.TrimSpace(cfg.SiteBaseURL), "/")

	if cfg.UpstreamBaseURL == "" {
		return AppConfig{}, fmt.Errorf("UPSTREAM_BASE_URL must not be blank")
	}
	if cfg.UpstreamToken == "" {
		return AppConfig{}, fmt.Errorf("UPSTREAM_TOKEN must not be blank")
	}
	if cfg.UpstreamTimeout <= 0 {
		return AppConfig{}, fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %s", cfg.UpstreamTimeout)
	}

	if strings.TrimSpace(cfg.ListenAddr) == "" {
		cfg.ListenAddr = fmt.Sprintf(":%s", cfg.Port)
	}

	return cfg, nil
}
