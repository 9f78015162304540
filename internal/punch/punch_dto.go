package punch

type RegisterPunchRequest struct {
	Kind         string  `json:"kind" binding:"required,oneof=ENTRADA SALIDA"`
	Latitude     float64 `json:"latitude" binding:"required"`
	Longitude    float64 `json:"longitude" binding:"required"`
	WorkLocation string  `json:"work_location" binding:"required"`
	PhotoRef     *string `json:"photo_ref"`

	// ClosePrevious confirms auto-registering the missing salida when the
	// previous day still has an unmatched entrada.
	ClosePrevious bool `json:"close_previous"`
}

type PunchResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	PunchDate          string  `json:"punch_date"`
	Kind               string  `json:"kind"`
	PunchedAt          string  `json:"punched_at"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	PhotoRef           *string `json:"photo_ref,omitempty"`
	WorkLocation       string  `json:"work_location"`
	DistanceM          float64 `json:"distance_m"`
	AutoClosedPrevious bool    `json:"auto_closed_previous,omitempty"`
}

type DayResponse struct {
	Date    string          `json:"date"`
	State   string          `json:"state"` // NO_ENTRY | ENTRY_ONLY | COMPLETE
	Punches []PunchResponse `json:"punches"`
}

// ComplianceRow feeds the admin heat map: one cell per employee per day.
type ComplianceRow struct {
	EmployeeID string `json:"employee_id"`
	PunchDate  string `json:"punch_date"`
	Entradas   int    `json:"entradas"`
	Salidas    int    `json:"salidas"`
	Complete   bool   `json:"complete"`
}
