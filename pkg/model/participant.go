package model

// Participant is a participant record as stored by the upstream API.
type Participant struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	CPF   string `json:"cpf,omitempty"`
}

// ParticipantRecord is a transient record built from one spreadsheet row
// during bulk import. Pointer fields distinguish an empty cell (nil) from
// an empty string; RowID is the 1-based spreadsheet row (header is row 1)
// used for per-row error reporting.
type ParticipantRecord struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	CPF   *string `json:"cpf,omitempty"`
	RowID string  `json:"tempId"`
}

// HasEssentialData reports whether the record carries at least a name or an
// email. Records without either are excluded from the batch.
func (r ParticipantRecord) HasEssentialData() bool {
	return (r.Name != nil && *r.Name != "") || (r.Email != nil && *r.Email != "")
}

// ImportRowResult is the upstream verdict for a single imported row.
type ImportRowResult struct {
	RowID        string `json:"tempId,omitempty"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	ImportStatus string `json:"importStatus"`
	Error        string `json:"error,omitempty"`
}

// ImportResult is the structured response of a batch import. The pipeline
// does not re-derive per-row outcomes; it trusts the server's verdicts.
type ImportResult struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Results []ImportRowResult `json:"results"`
}

// SuccessCount counts rows the server reported as imported.
func (r ImportResult) SuccessCount() int {
	n := 0
	for _, row := range r.Results {
		if row.ImportStatus == "success" {
			n++
		}
	}
	return n
}
