package model

// Certificate is a certificate record as listed by the upstream API.
type Certificate struct {
	ID         int64   `json:"id"`
	UniqueCode string  `json:"unique_code"`
	EventName  string  `json:"event_name,omitempty"`
	TotalHours float64 `json:"total_hours,omitempty"`
	IssueDate  string  `json:"issue_date,omitempty"`
}

// CertificateValidation is the public validation result for a unique code.
type CertificateValidation struct {
	IsValid         bool     `json:"is_valid"`
	ParticipantName string   `json:"participant_name,omitempty"`
	TotalHours      float64  `json:"total_hours,omitempty"`
	IssueDate       string   `json:"issue_date,omitempty"`
	AttendedEvents  []string `json:"attended_events,omitempty"`
	Detail          string   `json:"detail,omitempty"`
}
