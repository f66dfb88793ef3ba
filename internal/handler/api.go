package handler

import (
	"github.com/collegescope/internal/config"
	"github.com/collegescope/internal/service"
	"github.com/collegescope/internal/upstream"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	cfg       config.AppConfig
	upstream  *upstream.Client
	analytics *service.AnalyticsService
	sitemap   *service.SitemapService
}

// NewAPI constructs a handler set over the upstream client and the local
// analytics database. gdb may be nil, in which case view recording is
// disabled but every page still renders.
func NewAPI(cfg config.AppConfig, client *upstream.Client, gdb *gorm.DB) *API {
	api := &API{
		cfg:      cfg,
		upstream: client,
		sitemap:  service.NewSitemapService(client, cfg.SiteBaseURL),
	}
	if gdb != nil {
		api.analytics = service.NewAnalyticsService(gdb)
	}
	return api
}
