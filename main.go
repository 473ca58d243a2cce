package main

import (
	"github.com/Aquilabot/KreaPC-BuildAdvisor/internal/api"
	"github.com/Aquilabot/KreaPC-BuildAdvisor/internal/config"
	"github.com/Aquilabot/KreaPC-BuildAdvisor/pkg/source"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	log.SetLevel(cfg.LogLevel())

	// Load the catalog before accepting any query
	fetcher := source.NewFetcher(cfg.Catalog.FetchTimeout)
	fetcher.RandomizeUserAgent()

	cat, err := source.LoadCatalog(cfg.Catalog.Source, fetcher)
	if err != nil {
		log.Fatalf("Could not load catalog: %v", err)
	}
	log.Infof("Loaded %d builds from %s", cat.Len(), cfg.Catalog.Source)

	app := api.New(cat, cfg)

	// Start the server
	log.Infof("Listening on %s", cfg.Address())
	log.Fatal(app.Listen(cfg.Address()))
}
