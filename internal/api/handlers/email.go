package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emreokur/319FinalProject/internal/mailer"
)

// SendEmailRequest represents the outbound email payload. `to` may be a
// single address or a list.
type SendEmailRequest struct {
	To      json.RawMessage `json:"to" binding:"required"`
	Subject string          `json:"subject" binding:"required"`
	HTML    string          `json:"html"`
	Text    string          `json:"text"`
}

// recipients normalizes the `to` field into a list of addresses.
func (r *SendEmailRequest) recipients() ([]string, error) {
	var single string
	if err := json.Unmarshal(r.To, &single); err == nil {
		return []string{single}, nil
	}
	var many []string
	if err := json.Unmarshal(r.To, &many); err != nil {
		return nil, err
	}
	return many, nil
}

// HandleSendEmail handles POST /api/email
func HandleSendEmail(client *mailer.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SendEmailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		to, err := req.recipients()
		if err != nil || len(to) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be an address or a list of addresses"})
			return
		}
		if req.HTML == "" && req.Text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "html or text body required"})
			return
		}

		result, err := client.Send(c.Request.Context(), mailer.SendRequest{
			To:      to,
			Subject: req.Subject,
			HTML:    req.HTML,
			Text:    req.Text,
		})
		if err != nil {
			logger.Error("Failed to send email", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "email provider error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "email sent", "id": result.ID})
	}
}
