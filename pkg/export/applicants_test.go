package export_test

import (
	"bytes"
	"testing"
	"time"

	"job-portal-backend/pkg/export"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestApplicantsWorkbook(t *testing.T) {
	data, err := export.ApplicantsWorkbook("Backend Engineer", []export.ApplicantRow{
		{CandidateID: 3, FullName: "Jane Doe", Email: "jane@example.com", Status: "pending",
			AppliedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC), MatchPercentage: 75},
		{CandidateID: 4, FullName: "John Roe", Email: "john@example.com", Status: "pending"},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Applicants", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Applicants: Backend Engineer", title)

	header, _ := f.GetCellValue("Applicants", "B4")
	assert.Equal(t, "Full name", header)

	name, _ := f.GetCellValue("Applicants", "B5")
	assert.Equal(t, "Jane Doe", name)
	applied, _ := f.GetCellValue("Applicants", "H5")
	assert.Equal(t, "2024-05-01 09:30", applied)
	match, _ := f.GetCellValue("Applicants", "I5")
	assert.Equal(t, "75", match)

	rows, err := f.GetRows("Applicants")
	require.NoError(t, err)
	assert.Len(t, rows, 6)
}
