package punch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

type stubService struct {
	resp PunchResponse
}

func (s *stubService) Register(ctx context.Context, companyID, employeeID string, req RegisterPunchRequest) (PunchResponse, error) {
	return s.resp, nil
}

func (s *stubService) GetDay(ctx context.Context, companyID, employeeID string, date time.Time) (DayResponse, error) {
	return DayResponse{}, nil
}

func (s *stubService) GetRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]PunchResponse, error) {
	return nil, nil
}

func (s *stubService) GetAllForCompany(ctx context.Context, companyID string, from, to time.Time) ([]PunchResponse, error) {
	return nil, nil
}

func (s *stubService) Compliance(ctx context.Context, companyID string, from, to time.Time) ([]ComplianceRow, error) {
	return nil, nil
}

func TestRegister_WritesIdempotentResponseToCache(t *testing.T) {
	gin.SetMode(gin.TestMode)

	resp := PunchResponse{ID: "p1", Kind: KindEntrada, PunchDate: "2026-08-27"}
	payload, err := json.Marshal(resp)
	assert.NoError(t, err)

	cacheKey := "idemp:/api/v1/punches:e1:key-1"
	rdb, mock := redismock.NewClientMock()
	mock.ExpectSet(cacheKey, payload, idempotencyCacheTTL).SetVal("OK")
	mock.ExpectDel(cacheKey + ":lock").SetVal(1)

	h := NewHandlerWithRedis(&stubService{resp: resp}, rdb)

	r := gin.New()
	r.POST("/punches", func(c *gin.Context) {
		c.Set("company_id", "c1")
		c.Set("employee_id", "e1")
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", cacheKey+":lock")
	}, h.Register)

	body := `{"kind":"ENTRADA","latitude":18.4861,"longitude":-69.9312,"work_location":"Sede Central"}`
	req := httptest.NewRequest(http.MethodPost, "/punches", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_NoIdempotencyKeySkipsCache(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()
	h := NewHandlerWithRedis(&stubService{resp: PunchResponse{ID: "p1"}}, rdb)

	r := gin.New()
	r.POST("/punches", func(c *gin.Context) {
		c.Set("company_id", "c1")
		c.Set("employee_id", "e1")
	}, h.Register)

	body := `{"kind":"ENTRADA","latitude":18.4861,"longitude":-69.9312,"work_location":"Sede Central"}`
	req := httptest.NewRequest(http.MethodPost, "/punches", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
