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
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Initialize database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)

	fmt.Println("📋 Listing recent orders:")

	orders, err := repos.Order.ListAll(context.Background(), 100, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to query orders: %v\n", err)
		os.Exit(1)
	}

	for i, order := range orders {
		fmt.Printf("Order #%d:\n", i+1)
		fmt.Printf("  ID: %s\n", order.ID.String())
		fmt.Printf("  User: %s\n", order.UserID)
		fmt.Printf("  Recipient: %s\n", order.Shipping.FullName)
		fmt.Printf("  Items: %d\n", len(order.Items))
		fmt.Printf("  Total: %.2f\n", order.Total)
		fmt.Printf("  Received: %v  Packed: %v  Shipped: %v  Delivered: %v\n",
			order.Status.ReceivedOrder.Completed,
			order.Status.Packed.Completed,
			order.Status.Shipped.Completed,
			order.Status.Delivered.Completed,
		)
		if order.Status.IsCancelled() {
			fmt.Printf("  Cancelled: true\n")
		}
		if order.Status.ReturnRequested != nil && order.Status.ReturnRequested.Requested {
			fmt.Printf("  Return requested: true\n")
		}
		fmt.Printf("  Created: %s\n", order.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Println()
	}

	if len(orders) == 0 {
		fmt.Println("❌ No orders found in database.")
	} else {
		fmt.Printf("✅ Found %d order(s)\n", len(orders))
	}
}
