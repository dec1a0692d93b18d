package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Pessima-byte/Estommy-sub002/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{
			name:       "insufficient stock is a conflict",
			err:        &service.InsufficientStockError{ProductName: "Rice 50kg", Requested: 5, Available: 2},
			wantStatus: http.StatusConflict,
			wantDetail: "insufficient stock for Rice 50kg",
		},
		{
			name:       "malformed input is a bad request",
			err:        &service.InvalidInputError{Msg: "invalid from date: bad format"},
			wantStatus: http.StatusBadRequest,
			wantDetail: "invalid from date",
		},
		{
			name:       "missing entity is a 404",
			err:        service.ErrProductNotFound,
			wantStatus: http.StatusNotFound,
			wantDetail: "product not found",
		},
		{
			name:       "double refund is a conflict",
			err:        service.ErrSaleAlreadyRefunded,
			wantStatus: http.StatusConflict,
			wantDetail: "already refunded",
		},
		{
			name:       "unknown errors are a generic 500",
			err:        errors.New(`ERROR: deadlock detected (SQLSTATE 40P01)`),
			wantStatus: http.StatusInternalServerError,
			wantDetail: "Internal server error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tc.err)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tc.wantDetail)
		})
	}
}

func TestRespondErrorNeverLeaksInternals(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	respondError(c, errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := w.Body.String()
	assert.False(t, strings.Contains(body, "10.0.0.5"), "driver details must stay out of responses: %s", body)
	assert.Contains(t, body, "Internal server error")
}
