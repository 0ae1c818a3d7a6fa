package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/emreokur/319FinalProject/internal/config"
	"github.com/emreokur/319FinalProject/internal/repository/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)

	products, err := repos.Product.List(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list products: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("📋 Catalog:")
	for _, p := range products {
		fmt.Printf("  #%d %s — $%.2f (stock %d)\n", p.ID, p.Name, p.Price, p.Quantity)
	}
	fmt.Printf("\n✅ %d product(s)\n", len(products))
}
