package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"jobflix-backend/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv"
)

var exportHeaders = []string{"APPLICATION ID", "APPLICANT", "EMAIL", "STATUS", "APPLIED AT", "COVER LETTER"}

// exportRow pairs an application with its applicant; user is nil when the account is gone.
type exportRow struct {
	app  domain.Application
	user *domain.User
}

func (r exportRow) values() []string {
	name, email := "", ""
	if r.user != nil {
		name, email = r.user.FullName, r.user.Email
	}
	cover := ""
	if r.app.CoverLetter != nil {
		cover = *r.app.CoverLetter
	}
	return []string{
		strconv.FormatInt(r.app.ID, 10),
		name,
		email,
		r.app.Status,
		r.app.AppliedAt.UTC().Format(time.RFC3339),
		cover,
	}
}

// csvCell quotes values a spreadsheet would evaluate as a formula. Applicants control
// names and cover letters.
func csvCell(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}

func exportFilename(job *domain.Job, ext string, at time.Time) string {
	return fmt.Sprintf("applications_job_%d_%s.%s", job.ID, at.Format("20060102_150405"), ext)
}

func exportExcel(job *domain.Job, rows []exportRow, at time.Time) (*domain.ApplicationExport, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Applications"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, row := range rows {
		for colIdx, value := range row.values() {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range exportHeaders {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 24)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return &domain.ApplicationExport{
		Filename:    exportFilename(job, "xlsx", at),
		ContentType: contentTypeXLSX,
		Data:        buf.Bytes(),
	}, nil
}

func exportCSV(job *domain.Job, rows []exportRow, at time.Time) (*domain.ApplicationExport, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, row := range rows {
		values := row.values()
		for i, v := range values {
			values[i] = csvCell(v)
		}
		if err := w.Write(values); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	return &domain.ApplicationExport{
		Filename:    exportFilename(job, "csv", at),
		ContentType: contentTypeCSV,
		Data:        buf.Bytes(),
	}, nil
}
