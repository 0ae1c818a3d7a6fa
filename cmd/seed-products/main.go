package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/emreokur/319FinalProject/internal/config"
	"github.com/emreokur/319FinalProject/internal/domain"
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

	seller := "CameraStore"
	products := []*domain.Product{
		{
			Name:        "Canon EOS R6 Mark II",
			Description: "24MP full-frame mirrorless body with in-body stabilization.",
			Price:       2499.00,
			Quantity:    12,
			Images:      "/images/canon-r6-ii.jpg",
			Specs: map[string]interface{}{
				"sensor":   "24.2MP full-frame CMOS",
				"mount":    "RF",
				"video":    "4K60",
				"weight_g": 670,
			},
			Seller: &seller,
		},
		{
			Name:        "Sony a7 IV",
			Description: "33MP hybrid full-frame mirrorless camera.",
			Price:       2498.00,
			Quantity:    8,
			Images:      "/images/sony-a7iv.jpg",
			Specs: map[string]interface{}{
				"sensor":   "33MP full-frame Exmor R",
				"mount":    "E",
				"video":    "4K60 10-bit",
				"weight_g": 658,
			},
			Seller: &seller,
		},
		{
			Name:        "Fujifilm X-T5",
			Description: "40MP APS-C camera with classic dial controls.",
			Price:       1699.00,
			Quantity:    15,
			Images:      "/images/fuji-xt5.jpg",
			Specs: map[string]interface{}{
				"sensor":   "40.2MP X-Trans 5",
				"mount":    "X",
				"video":    "6.2K30",
				"weight_g": 557,
			},
			Seller: &seller,
		},
		{
			Name:        "Canon RF 24-70mm f/2.8L IS USM",
			Description: "Standard zoom for RF mount with image stabilization.",
			Price:       2299.00,
			Quantity:    6,
			Images:      "/images/rf-24-70.jpg",
			Specs: map[string]interface{}{
				"mount":    "RF",
				"aperture": "f/2.8",
				"filter":   "82mm",
			},
			Seller: &seller,
		},
		{
			Name:        "Peak Design Everyday Backpack 20L",
			Description: "Weatherproof camera backpack with FlexFold dividers.",
			Price:       279.95,
			Quantity:    30,
			Images:      "/images/pd-everyday-20.jpg",
			Specs: map[string]interface{}{
				"volume_l": 20,
				"material": "400D nylon canvas",
			},
			Seller: &seller,
		},
	}

	ctx := context.Background()
	for _, p := range products {
		if err := repos.Product.Create(ctx, p); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to seed %q: %v\n", p.Name, err)
			os.Exit(1)
		}
		fmt.Printf("Seeded #%d %s\n", p.ID, p.Name)
	}

	fmt.Printf("✅ Seeded %d product(s)\n", len(products))
}
