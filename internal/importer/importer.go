// Package importer implements the participant bulk-import pipeline: parse a
// spreadsheet, map recognized headers to participant fields, drop rows with
// no usable identity, and submit the survivors as one batch.
//
// The pipeline never re-derives per-row outcomes; the upstream API's verdict
// list is returned to the caller untouched.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/me/smecert/internal/logging"
	"github.com/me/smecert/pkg/model"
)

// Pipeline-level errors.
var (
	// ErrEmptySheet is returned when the sheet holds a header row only,
	// or nothing at all.
	ErrEmptySheet = errors.New("spreadsheet has no data rows")

	// ErrNoValidRows is returned when every data row lacks both a name
	// and an email.
	ErrNoValidRows = errors.New("no valid participant rows found")

	// ErrUnsupportedFormat is returned for file extensions the parser
	// does not handle.
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format (expected .xlsx or .csv)")
)

// ParseError wraps a malformed-file failure. The UI shows it with guidance
// about the expected headers.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse spreadsheet: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SubmitError wraps a batch submission failure (transport or server). The
// server message, when present, is shown verbatim.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("import batch: %v", e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// headerAliases maps normalized header cells to canonical participant
// fields. Unrecognized headers contribute no field.
var headerAliases = map[string]string{
	"nome":          "name",
	"nome completo": "name",
	"email":         "email",
	"e-mail":        "email",
	"cpf":           "cpf",
}

// BatchSubmitter submits one batch of records. *api.Client implements it.
type BatchSubmitter interface {
	ImportParticipants(ctx context.Context, records []model.ParticipantRecord) (*model.ImportResult, error)
}

// Pipeline runs the parse-map-submit flow.
type Pipeline struct {
	submitter BatchSubmitter
	logger    *slog.Logger
}

// New creates a Pipeline submitting through sub.
func New(sub BatchSubmitter, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Pipeline{
		submitter: sub,
		logger:    logger.With("component", "importer"),
	}
}

// ParseRows reads the first sheet of an .xlsx or .csv file into raw rows.
// Row 1 is expected to be the header.
func ParseRows(r io.Reader, filename string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return parseExcel(r)
	case ".csv":
		return parseCSV(r)
	default:
		return nil, &ParseError{Err: ErrUnsupportedFormat}
	}
}

func parseExcel(r io.Reader) ([][]string, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return rows, nil
}

func parseCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return rows, nil
}

// Records maps raw rows to participant records. The header row is
// normalized (trimmed, lower-cased) and matched against the alias table;
// data cells are trimmed with empty cells becoming nil. Rows lacking both a
// name and an email are silently discarded.
func Records(rows [][]string) ([]model.ParticipantRecord, error) {
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}

	fields := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		fields[i] = headerAliases[strings.ToLower(strings.TrimSpace(cell))]
	}

	var records []model.ParticipantRecord
	for i, row := range rows[1:] {
		rec := model.ParticipantRecord{
			// 1-based spreadsheet row: +1 for the header, +1 for 0-indexing.
			RowID: fmt.Sprintf("row-%d", i+2),
		}
		for col, field := range fields {
			if field == "" || col >= len(row) {
				continue
			}
			value := strings.TrimSpace(row[col])
			if value == "" {
				continue
			}
			v := value
			switch field {
			case "name":
				rec.Name = &v
			case "email":
				rec.Email = &v
			case "cpf":
				rec.CPF = &v
			}
		}
		if rec.HasEssentialData() {
			records = append(records, rec)
		}
	}

	if len(records) == 0 {
		return nil, ErrNoValidRows
	}
	return records, nil
}

// Run executes the full pipeline against one uploaded file and returns the
// server's import result. Parse and validation failures are reported before
// any submit call; a submit failure surfaces as a single SubmitError with no
// partial retry.
func (p *Pipeline) Run(ctx context.Context, r io.Reader, filename string) (*model.ImportResult, error) {
	rows, err := ParseRows(r, filename)
	if err != nil {
		return nil, err
	}

	records, err := Records(rows)
	if err != nil {
		return nil, err
	}

	p.logger.Info("submitting import batch", "file", filename, "rows", len(rows)-1, "records", len(records))

	result, err := p.submitter.ImportParticipants(ctx, records)
	if err != nil {
		return nil, &SubmitError{Err: err}
	}

	p.logger.Info("import batch finished",
		"file", filename,
		"imported", result.SuccessCount(),
		"reported", len(result.Results),
	)
	return result, nil
}
