package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/vaibhav45sktech/crypto1/internal/config"
	"github.com/vaibhav45sktech/crypto1/internal/handlers"
	"github.com/vaibhav45sktech/crypto1/internal/ledger"
	"github.com/vaibhav45sktech/crypto1/internal/profile"
	"github.com/vaibhav45sktech/crypto1/internal/quotes"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	// Load .env file if it exists, but don't fail if it's missing (e.g. in production)
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_FILE")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	seeds := make([]ledger.SeedHolding, 0, len(cfg.SeedHoldings))
	for _, s := range cfg.SeedHoldings {
		seeds = append(seeds, ledger.SeedHolding{Symbol: s.Symbol, Quantity: s.Quantity, ReferencePrice: s.Price})
	}
	book := ledger.New(cfg.SeedCash, seeds, logger)

	provider := quotes.NewAlphaVantage(cfg.QuoteBaseURL, cfg.QuoteAPIKey, cfg.QuoteTimeout, logger)
	quoteSvc := quotes.NewService(provider, logger)
	profiles := profile.NewStore()

	h := handlers.NewHandler(book, quoteSvc, profiles, cfg.FeeRate, logger)

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "*"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(handlers.RequestLogger(logger))
	r.Use(handlers.CORS(corsOrigin))
	handlers.Register(r, h)

	logger.Infof("server starting on :%s", cfg.Port)
	if err := r.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}
