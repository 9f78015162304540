package worklocation

import (
	"net/http"

	"github.com/armandonoel2022/srcapp-sub001/internal/geo"
	"github.com/armandonoel2022/srcapp-sub001/internal/shared/apperror"
	"github.com/armandonoel2022/srcapp-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req CreateWorkLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), companyID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	companyID := c.GetString("company_id")
	id := c.Param("id")

	var req UpdateWorkLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), companyID, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	companyID := c.GetString("company_id")
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), companyID, id); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusNoContent, nil, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.GetAll(c.Request.Context(), companyID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Validate is the punch screen's pre-check: it tells the client whether
// the current position would be accepted for the named location.
func (h *Handler) Validate(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	result, err := h.service.Validate(c.Request.Context(), companyID, req.Name,
		geo.GeoPoint{Latitude: req.Latitude, Longitude: req.Longitude})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, nil)
}

// Nearest reports the closest active location for informational display.
func (h *Handler) Nearest(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req struct {
		Latitude  float64 `json:"latitude" binding:"required"`
		Longitude float64 `json:"longitude" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	nearest, err := h.service.NearestForDisplay(c.Request.Context(), companyID,
		geo.GeoPoint{Latitude: req.Latitude, Longitude: req.Longitude})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if nearest == nil {
		response.Error(c, http.StatusNotFound, apperror.CodeNotFound, "No active work locations configured", nil)
		return
	}
	response.Success(c, http.StatusOK, nearest, nil)
}
