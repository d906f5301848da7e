package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestHealth_ReportsDegradedBackends(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// No connection pool behind gorm and nothing listening on the redis
	// address, so both checks must come back down.
	db := &gorm.DB{Config: &gorm.Config{}}
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	Health(db, rdb)(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t,
		`{"status":"degraded","checks":{"postgres":"down","redis":"down"}}`,
		w.Body.String())
}
