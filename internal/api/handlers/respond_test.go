package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emreokur/319FinalProject/pkg/errors"
)

func TestRespondErrorStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", &errors.ErrNotFound{Resource: "product", ID: "1"}, http.StatusNotFound},
		{"validation", &errors.ErrValidation{Message: "bad input"}, http.StatusBadRequest},
		{"unauthorized", &errors.ErrUnauthorized{Message: "invalid password"}, http.StatusUnauthorized},
		{"forbidden", &errors.ErrForbidden{Message: "access denied"}, http.StatusForbidden},
		{"conflict", &errors.ErrConflict{Message: "duplicate"}, http.StatusConflict},
		{"insufficient stock", &errors.ErrInsufficientStock{ProductID: 1, Requested: 5, Available: 2}, http.StatusBadRequest},
		{"invalid transition", &errors.ErrInvalidTransition{Message: "order is cancelled"}, http.StatusBadRequest},
		{"unexpected", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, zap.NewNop(), tc.err)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestRespondErrorInsufficientStockBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/cart/items", nil)

	respondError(c, zap.NewNop(), &errors.ErrInsufficientStock{ProductID: 7, Requested: 9, Available: 2})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2.0, body["available"])
}
