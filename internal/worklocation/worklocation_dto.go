package worklocation

type CreateWorkLocationRequest struct {
	Name             string  `json:"name" binding:"required"`
	Latitude         float64 `json:"latitude" binding:"required"`
	Longitude        float64 `json:"longitude" binding:"required"`
	ToleranceRadiusM float64 `json:"tolerance_radius_m" binding:"required,gt=0"`
	Active           *bool   `json:"active"`
}

type UpdateWorkLocationRequest struct {
	Name             *string  `json:"name"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	ToleranceRadiusM *float64 `json:"tolerance_radius_m"`
	Active           *bool    `json:"active"`
}

type WorkLocationResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	ToleranceRadiusM float64 `json:"tolerance_radius_m"`
	Active           bool    `json:"active"`
}

type ValidateRequest struct {
	Name      string  `json:"name" binding:"required"`
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}
