package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emreokur/319FinalProject/internal/repository"
	"github.com/emreokur/319FinalProject/internal/service"
)

// SubmitQuestionRequest represents the question payload
type SubmitQuestionRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Question string `json:"question" binding:"required"`
}

// HandleSubmitQuestion handles POST /api/questions
func HandleSubmitQuestion(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubmitQuestionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		questionSvc := service.NewQuestionService(repos, logger)
		question, err := questionSvc.SubmitQuestion(c.Request.Context(), req.Email, req.Question)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, toQuestionResponse(question))
	}
}

// HandleListQuestions handles GET /api/questions
func HandleListQuestions(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		questionSvc := service.NewQuestionService(repos, logger)
		questions, err := questionSvc.ListQuestions(c.Request.Context(), c.Query("email"))
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"questions": toQuestionResponses(questions), "count": len(questions)})
	}
}

// HandleResolveQuestion handles PATCH /api/questions/:id/resolve
func HandleResolveQuestion(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid question id"})
			return
		}

		questionSvc := service.NewQuestionService(repos, logger)
		if err := questionSvc.ResolveQuestion(c.Request.Context(), id); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "question resolved"})
	}
}

// HandleDeleteQuestion handles DELETE /api/questions/:id
func HandleDeleteQuestion(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid question id"})
			return
		}

		questionSvc := service.NewQuestionService(repos, logger)
		if err := questionSvc.DeleteQuestion(c.Request.Context(), id); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "question deleted"})
	}
}
