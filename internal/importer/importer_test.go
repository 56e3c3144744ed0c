package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/me/smecert/pkg/model"
)

// fakeSubmitter records batches and returns a scripted result.
type fakeSubmitter struct {
	calls   int
	batches [][]model.ParticipantRecord
	result  *model.ImportResult
	err     error
}

func (f *fakeSubmitter) ImportParticipants(_ context.Context, records []model.ParticipantRecord) (*model.ImportResult, error) {
	f.calls++
	f.batches = append(f.batches, records)
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	results := make([]model.ImportRowResult, len(records))
	for i, rec := range records {
		results[i] = model.ImportRowResult{RowID: rec.RowID, ImportStatus: "success"}
	}
	return &model.ImportResult{
		Success: true,
		Message: fmt.Sprintf("%d participantes importados com sucesso.", len(records)),
		Results: results,
	}, nil
}

// buildXLSX writes rows into the first sheet of an in-memory workbook.
func buildXLSX(t *testing.T, rows [][]any) io.Reader {
	t.Helper()
	wb := excelize.NewFile()
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))
	return &buf
}

func TestRun_HeaderOnly_EmptySheet(t *testing.T) {
	sub := &fakeSubmitter{}
	p := New(sub, nil)

	file := buildXLSX(t, [][]any{{"Nome", "Email", "CPF"}})
	_, err := p.Run(context.Background(), file, "lista.xlsx")

	require.ErrorIs(t, err, ErrEmptySheet)
	assert.Zero(t, sub.calls, "no submit call for an empty sheet")
}

func TestRun_MapsSynonymHeaders(t *testing.T) {
	sub := &fakeSubmitter{}
	p := New(sub, nil)

	file := buildXLSX(t, [][]any{
		{"Nome Completo", "Email", "CPF"},
		{"Ana", "ana@x.com", "123"},
	})
	res, err := p.Run(context.Background(), file, "lista.xlsx")
	require.NoError(t, err)
	assert.True(t, res.Success)

	require.Equal(t, 1, sub.calls)
	require.Len(t, sub.batches[0], 1)

	rec := sub.batches[0][0]
	require.NotNil(t, rec.Name)
	require.NotNil(t, rec.Email)
	require.NotNil(t, rec.CPF)
	assert.Equal(t, "Ana", *rec.Name)
	assert.Equal(t, "ana@x.com", *rec.Email)
	assert.Equal(t, "123", *rec.CPF)
	assert.Equal(t, "row-2", rec.RowID)
}

func TestRecords_DiscardsRowsWithoutNameOrEmail(t *testing.T) {
	rows := [][]string{
		{"Nome", "E-mail", "CPF"},
		{"", "", "999.999.999-99"}, // only CPF: discarded
		{"Bruno", "", ""},          // name is enough
		{"", "carla@x.com", ""},    // email is enough
	}
	records, err := Records(rows)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Bruno", *records[0].Name)
	assert.Equal(t, "row-3", records[0].RowID)
	assert.Equal(t, "carla@x.com", *records[1].Email)
	assert.Equal(t, "row-4", records[1].RowID)
}

func TestRecords_AllDiscarded_NoValidRows(t *testing.T) {
	rows := [][]string{
		{"Nome", "Email", "CPF"},
		{"", "", "123"},
		{"  ", "   ", ""},
	}
	_, err := Records(rows)
	require.ErrorIs(t, err, ErrNoValidRows)
}

func TestRecords_UnrecognizedHeadersIgnored(t *testing.T) {
	rows := [][]string{
		{"  NOME  ", "Telefone", "e-mail"},
		{"Ana", "555-0100", "ana@x.com"},
	}
	records, err := Records(rows)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Ana", *rec.Name)
	assert.Equal(t, "ana@x.com", *rec.Email)
	assert.Nil(t, rec.CPF, "unmapped column must not leak into the record")
}

func TestRecords_TrimsCellsAndKeepsEmptyAsNil(t *testing.T) {
	rows := [][]string{
		{"nome", "email", "cpf"},
		{"  Ana  ", "", "  123  "},
	}
	records, err := Records(rows)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Ana", *rec.Name)
	assert.Nil(t, rec.Email, "empty cell maps to nil, not empty string")
	assert.Equal(t, "123", *rec.CPF)
}

func TestRecords_ShortRows(t *testing.T) {
	// Data rows may have fewer cells than the header.
	rows := [][]string{
		{"nome", "email", "cpf"},
		{"Ana"},
	}
	records, err := Records(rows)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].Email)
	assert.Nil(t, records[0].CPF)
}

func TestRun_CSV(t *testing.T) {
	sub := &fakeSubmitter{}
	p := New(sub, nil)

	csvData := "Nome,Email\nAna,ana@x.com\nBruno,bruno@x.com\n"
	res, err := p.Run(context.Background(), strings.NewReader(csvData), "lista.csv")
	require.NoError(t, err)
	assert.Len(t, res.Results, 2)
	assert.Equal(t, 2, res.SuccessCount())
}

func TestRun_UnsupportedFormat(t *testing.T) {
	sub := &fakeSubmitter{}
	p := New(sub, nil)

	_, err := p.Run(context.Background(), strings.NewReader("x"), "lista.pdf")
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Zero(t, sub.calls)
}

func TestRun_SubmitFailureIsSingleError(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("upstream rejected batch")}
	p := New(sub, nil)

	file := buildXLSX(t, [][]any{
		{"Nome", "Email"},
		{"Ana", "ana@x.com"},
	})
	_, err := p.Run(context.Background(), file, "lista.xlsx")

	var subErr *SubmitError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, 1, sub.calls, "no partial retry on submit failure")
}

func TestRun_TrustsServerVerdicts(t *testing.T) {
	sub := &fakeSubmitter{result: &model.ImportResult{
		Success: true,
		Message: "1 participantes importados com sucesso.",
		Results: []model.ImportRowResult{
			{RowID: "row-2", ImportStatus: "success"},
			{RowID: "row-3", ImportStatus: "error", Error: "duplicate email"},
		},
	}}
	p := New(sub, nil)

	file := buildXLSX(t, [][]any{
		{"Nome", "Email"},
		{"Ana", "ana@x.com"},
		{"Ana2", "ana@x.com"},
	})
	res, err := p.Run(context.Background(), file, "lista.xlsx")
	require.NoError(t, err)

	// The pipeline reports exactly what the server said.
	assert.Equal(t, 1, res.SuccessCount())
	require.Len(t, res.Results, 2)
	assert.Equal(t, "duplicate email", res.Results[1].Error)
}
