package punch

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/armandonoel2022/srcapp-sub001/internal/shared/apperror"
	"github.com/armandonoel2022/srcapp-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cached idempotent responses outlive the lock window so late client
// retries replay the original result instead of hitting the unique index.
const idempotencyCacheTTL = 24 * time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Register(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.GetString("employee_id")

	var req RegisterPunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), companyID, employeeID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

// cacheIdempotentResponse stores the successful result under the key the
// idempotency middleware derived and releases its lock, so a retried punch
// replays this response.
func (h *Handler) cacheIdempotentResponse(c *gin.Context, resp PunchResponse) {
	if h.rdb == nil {
		return
	}
	cacheKey := c.GetString("idempotency_cache_key")
	if cacheKey == "" {
		return
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}

	ctx := c.Request.Context()
	if err := h.rdb.Set(ctx, cacheKey, payload, idempotencyCacheTTL).Err(); err != nil {
		zap.L().Named("punch.handler").Warn("idempotency cache write failed", zap.Error(err))
	}
	if lockKey := c.GetString("idempotency_lock_key"); lockKey != "" {
		h.rdb.Del(ctx, lockKey)
	}
}

// GetDay returns today's punches (or ?date=YYYY-MM-DD) with the day state
// the punch screen uses to decide which button to show.
func (h *Handler) GetDay(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.GetString("employee_id")

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "date must be YYYY-MM-DD", nil)
			return
		}
		date = parsed
	}

	resp, err := h.service.GetDay(c.Request.Context(), companyID, employeeID, date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetRange(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.GetString("employee_id")

	from, to, err := parseRange(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, err.Error(), nil)
		return
	}

	resp, err := h.service.GetRange(c.Request.Context(), companyID, employeeID, from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// GetAllForCompany lists every employee's punches in the window for the
// supervision screen.
func (h *Handler) GetAllForCompany(c *gin.Context) {
	companyID := c.GetString("company_id")

	from, to, err := parseRange(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, err.Error(), nil)
		return
	}

	resp, err := h.service.GetAllForCompany(c.Request.Context(), companyID, from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Compliance feeds the admin heat map: per-employee per-day punch counts.
func (h *Handler) Compliance(c *gin.Context) {
	companyID := c.GetString("company_id")

	from, to, err := parseRange(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, err.Error(), nil)
		return
	}

	resp, err := h.service.Compliance(c.Request.Context(), companyID, from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func parseRange(c *gin.Context) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return time.Time{}, time.Time{}, errInvalidRange
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, errInvalidRange
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errInvalidRange
	}
	return from, to, nil
}

var errInvalidRange = apperror.New(apperror.CodeInvalidInput, "from/to must be YYYY-MM-DD with from <= to", http.StatusBadRequest)
