package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emreokur/319FinalProject/internal/api/middleware"
	"github.com/emreokur/319FinalProject/internal/config"
	"github.com/emreokur/319FinalProject/internal/domain"
	"github.com/emreokur/319FinalProject/internal/repository"
	"github.com/emreokur/319FinalProject/internal/service"
)

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the account view returned to callers. The password hash
// never leaves the server.
type UserResponse struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	CreatedAt    string `json:"created_at"`
	LastModified string `json:"last_modified"`
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		Username:     user.Username,
		Email:        user.Email,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		LastModified: user.LastModified.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// canAccessAccount reports whether the caller may act on the account named
// in the path. Admins may act on any account.
func canAccessAccount(c *gin.Context, email string) (*middleware.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	if identity.Role != domain.RoleAdmin && !strings.EqualFold(identity.Email, email) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return nil, false
	}
	return identity, true
}

// HandleRegister handles POST /api/auth/register
func HandleRegister(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		userSvc := service.NewUserService(repos, logger)
		user, err := userSvc.Register(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, toUserResponse(user))
	}
}

// HandleLogin handles POST /api/auth/login
func HandleLogin(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		userSvc := service.NewUserService(repos, logger)
		user, err := userSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		token, err := middleware.IssueToken(user, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		if err != nil {
			logger.Error("Failed to issue token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user":  toUserResponse(user),
		})
	}
}

// HandleGetUser handles GET /api/auth/user/:email
func HandleGetUser(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")
		if _, ok := canAccessAccount(c, email); !ok {
			return
		}

		userSvc := service.NewUserService(repos, logger)
		user, err := userSvc.GetUser(c.Request.Context(), email)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, toUserResponse(user))
	}
}

// HandleUpdateUser handles PUT /api/auth/user/:email
func HandleUpdateUser(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")
		if _, ok := canAccessAccount(c, email); !ok {
			return
		}

		var req service.UpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		userSvc := service.NewUserService(repos, logger)
		user, err := userSvc.UpdateUser(c.Request.Context(), email, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, toUserResponse(user))
	}
}

// HandleDeleteUser handles DELETE /api/auth/user/:email
func HandleDeleteUser(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")
		if _, ok := canAccessAccount(c, email); !ok {
			return
		}

		userSvc := service.NewUserService(repos, logger)
		if err := userSvc.DeleteUser(c.Request.Context(), email); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
	}
}
