package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func postCodes(r *gin.Engine, n int) []int {
	codes := make([]int, 0, n)
	for i := 0; i < n; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/punches", nil))
		codes = append(codes, w.Code)
	}
	return codes
}

func TestRateLimitByEmployee_LimitsBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("employee_id", "e1") })
	r.Use(RateLimitByEmployee(rate.Limit(1), 2))
	r.POST("/punches", func(c *gin.Context) { c.Status(http.StatusCreated) })

	assert.Equal(t, []int{201, 201, 429}, postCodes(r, 3))
}

func TestRateLimitByEmployee_SkipsUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitByEmployee(rate.Limit(1), 1))
	r.POST("/punches", func(c *gin.Context) { c.Status(http.StatusCreated) })

	// Without an employee in context the limiter must not interfere; the
	// IP limiter is the backstop for anonymous traffic.
	assert.Equal(t, []int{201, 201, 201}, postCodes(r, 3))
}

func TestRateLimitByIP_LimitsBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitByIP(rate.Limit(1), 2))
	r.POST("/punches", func(c *gin.Context) { c.Status(http.StatusCreated) })

	assert.Equal(t, []int{201, 201, 429}, postCodes(r, 3))
}
