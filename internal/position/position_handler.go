package position

import (
	"net/http"
	"strconv"
	"time"

	"github.com/armandonoel2022/srcapp-sub001/internal/shared/apperror"
	"github.com/armandonoel2022/srcapp-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Downsampling interval applied when the client does not ask for one.
const defaultMinIntervalSeconds = 60

type Handler struct {
	service  Service
	snapper  RouteSnapper
	resolver AddressResolver
}

func NewHandler(service Service, snapper RouteSnapper, resolver AddressResolver) *Handler {
	return &Handler{service: service, snapper: snapper, resolver: resolver}
}

// History returns the downsampled trace for one device and date window,
// together with trip statistics, waypoints and the road-snapped route.
func (h *Handler) History(c *gin.Context) {
	deviceID := c.Param("device_id")
	if deviceID == "" {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "device_id is required", nil)
		return
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "from must be YYYY-MM-DD", nil)
		return
	}
	to := from
	if raw := c.Query("to"); raw != "" {
		to, err = time.Parse("2006-01-02", raw)
		if err != nil || to.Before(from) {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "to must be YYYY-MM-DD and not before from", nil)
			return
		}
	}

	minInterval := defaultMinIntervalSeconds * time.Second
	if raw := c.Query("min_interval_seconds"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs < 0 {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "min_interval_seconds must be a non-negative integer", nil)
			return
		}
		minInterval = time.Duration(secs) * time.Second
	}

	points, err := h.service.FetchHistory(c.Request.Context(), deviceID, from, to, minInterval)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	resp := BuildHistoryResponse(c.Request.Context(), deviceID, points, h.snapper, h.resolver)
	response.Success(c, http.StatusOK, resp, nil)
}
