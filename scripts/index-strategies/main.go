// scripts/index-strategies/main.go
//
// Embeds the recurring-purchase strategy catalog and indexes it into
// Qdrant. Run it once after changing the catalog; the API also warms the
// index at startup, so this script only matters for pre-seeding a fresh
// Qdrant instance.
//
// Usage:
//   go run scripts/index-strategies/main.go

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Panorama-Block/zico-agents-sub000/config"
	"github.com/Panorama-Block/zico-agents-sub000/internal/workflow/dca"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/log"
	pkgQdrant "github.com/Panorama-Block/zico-agents-sub000/pkg/qdrant"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/voyage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        "info",
		Mode:         "development",
		ColorEnabled: true,
	})

	ctx := context.Background()

	qdrantClient := pkgQdrant.NewClient(cfg.Qdrant.URL)
	embedder, err := voyage.New(cfg.Voyage.APIKey)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize Voyage API: %v", err)
	}

	retriever := dca.NewVectorRetriever(embedder, qdrantClient, logger)
	if err := retriever.Warm(ctx); err != nil {
		logger.Fatalf(ctx, "Failed to index strategy catalog: %v", err)
	}

	logger.Infof(ctx, "Strategy catalog indexed into %q", dca.StrategyCollection)
}
