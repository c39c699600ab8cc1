// Package export renders applicant lists as XLSX workbooks.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const applicantsSheet = "Applicants"

// ApplicantRow is one line of the applicants sheet.
type ApplicantRow struct {
	CandidateID     int64
	FullName        string
	Email           string
	PhoneNumber     string
	CurrentTitle    string
	TotalYearOfExp  float64
	Status          string
	AppliedAt       time.Time
	MatchPercentage float64
}

var applicantHeaders = []string{
	"Candidate ID", "Full name", "Email", "Phone", "Current title",
	"Years of experience", "Status", "Applied at", "Skill match (%)",
}

// ApplicantsWorkbook writes a single-sheet workbook and returns its bytes.
func ApplicantsWorkbook(postingName string, rows []ApplicantRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", applicantsSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, err
	}

	_ = f.SetCellValue(applicantsSheet, "A1", fmt.Sprintf("Applicants: %s", postingName))
	_ = f.SetCellStyle(applicantsSheet, "A1", "A1", titleStyle)
	_ = f.SetCellValue(applicantsSheet, "A2", fmt.Sprintf("Generated %s", time.Now().Format("2006-01-02 15:04:05")))

	const headerRow = 4
	for i, h := range applicantHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		_ = f.SetCellValue(applicantsSheet, cell, h)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(applicantHeaders))
	_ = f.SetCellStyle(applicantsSheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", lastCol, headerRow), headerStyle)

	for i, r := range rows {
		values := []interface{}{
			r.CandidateID,
			r.FullName,
			r.Email,
			r.PhoneNumber,
			r.CurrentTitle,
			r.TotalYearOfExp,
			r.Status,
			r.AppliedAt.Format("2006-01-02 15:04"),
			r.MatchPercentage,
		}
		start, _ := excelize.CoordinatesToCellName(1, headerRow+1+i)
		if err := f.SetSheetRow(applicantsSheet, start, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	_ = f.SetColWidth(applicantsSheet, "A", "A", 12)
	_ = f.SetColWidth(applicantsSheet, "B", "E", 28)
	_ = f.SetColWidth(applicantsSheet, "F", "I", 18)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
