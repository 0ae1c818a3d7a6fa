package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/emreokur/319FinalProject/internal/config"
	"github.com/emreokur/319FinalProject/internal/domain"
	"github.com/emreokur/319FinalProject/internal/repository/postgres"
)

func main() {
	usernameFlag := flag.String("username", "", "Admin display name")
	emailFlag := flag.String("email", "", "Admin login email")
	passwordFlag := flag.String("password", "", "Admin password (min 8 characters)")
	flag.Parse()

	username := strings.TrimSpace(*usernameFlag)
	email := strings.ToLower(strings.TrimSpace(*emailFlag))
	password := *passwordFlag

	if username == "" || email == "" || password == "" {
		fmt.Println("Usage:")
		fmt.Println("  go run cmd/create-admin/main.go --username \"Store Admin\" --email admin@example.com --password \"secret-pass\"")
		os.Exit(1)
	}
	if len(password) < 8 {
		fmt.Fprintf(os.Stderr, "Error: password must be at least 8 characters.\n")
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash password: %v\n", err)
		os.Exit(1)
	}

	repos := postgres.NewRepositories(db, logger)

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}

	if err := repos.User.Create(context.Background(), user); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Admin account created!\n\n")
	fmt.Printf("Username: %s\n", user.Username)
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Printf("Role: %s\n", user.Role)
	fmt.Printf("\nLog in via POST /api/auth/login to obtain a token.\n")
}
