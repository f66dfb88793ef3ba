package main

import (
	"log"

	"github.com/collegescope/internal/config"
	"github.com/collegescope/internal/db"
	"github.com/collegescope/internal/handler"
	"github.com/collegescope/internal/router"
	"github.com/collegescope/internal/upstream"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	client := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamToken, cfg.UpstreamTimeout)
	api := handler.NewAPI(cfg, client, db.DB)

	r := router.SetupRouter(api, cfg)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
