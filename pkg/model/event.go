package model

import "time"

// Event is an event record as stored by the upstream API.
type Event struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Workload    float64   `json:"workload_hours,omitempty"`
}

// Attendance is a check-in/check-out record for a participant at an event.
type Attendance struct {
	ID           int64      `json:"id"`
	EventID      int64      `json:"event_id"`
	EventName    string     `json:"event_name,omitempty"`
	Participant  string     `json:"participant_name,omitempty"`
	CheckInTime  *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
	Latitude     *float64   `json:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
}

// CheckedOut reports whether the attendance already has a check-out time.
func (a *Attendance) CheckedOut() bool {
	return a.CheckOutTime != nil
}
