package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/emreokur/319FinalProject/internal/repository"
)

// NewRepositories creates a new set of repositories
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Product:    NewProductRepository(db, logger),
		Cart:       NewCartRepository(db, logger),
		Order:      NewOrderRepository(db, logger),
		User:       NewUserRepository(db, logger),
		Question:   NewQuestionRepository(db, logger),
		OrderEvent: NewOrderEventRepository(db, logger),
	}
}
