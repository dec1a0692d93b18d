package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestHealthReportsDegradedWhenStoresUnreachable(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Lazy connection: nothing listens on port 1, so both pings fail.
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 port=1 user=estommy dbname=estommy sslmode=disable",
	}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	Health(db, rdb)(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Service string            `json:"service"`
		Status  string            `json:"status"`
		Checks  map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "estommy-backend", body.Service)
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "down", body.Checks["postgres"])
	assert.Equal(t, "down", body.Checks["redis"])
}
