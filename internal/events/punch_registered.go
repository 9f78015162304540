package events

import "time"

const PunchLifecycleTopic = "acceso.punch.lifecycle.v1"

type PunchRegisteredEvent struct {
	EventType    string    `json:"event_type"`
	PunchID      string    `json:"punch_id"`
	EmployeeID   string    `json:"employee_id"`
	CompanyID    string    `json:"company_id"`
	Kind         string    `json:"kind"`
	PunchDate    string    `json:"punch_date"`
	WorkLocation string    `json:"work_location"`
	AutoClosed   bool      `json:"auto_closed"`
	OccurredAt   time.Time `json:"occurred_at"`
}
