package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"talent-workflow-api/internal/domain"
	"talent-workflow-api/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

var exportColumns = []string{
	"CANDIDATE ID",
	"NAME",
	"EMAIL",
	"STATUS",
	"SKILLS SCORE (/10)",
	"DESIRED EXPERIENCE SCORE (/10)",
	"SPARSE RESUME",
	"SUBMITTED AT",
	"UPDATED AT",
}

// ExportCandidates renders every candidate of a job into an xlsx workbook.
func (u *candidateUsecase) ExportCandidates(ctx context.Context, jobID string) ([]byte, string, error) {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", apperror.NotFound("Job not found")
		}
		return nil, "", apperror.Internal(err)
	}

	candidates, err := u.candidateRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	data, err := buildCandidateWorkbook(job, candidates)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	filename := fmt.Sprintf("candidates_%s_%s.xlsx", job.ID, u.now().Format("20060102_150405"))
	return data, filename, nil
}

func buildCandidateWorkbook(job *domain.Job, candidates []domain.Candidate) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Candidates"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, header := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4C1D95"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, c := range candidates {
		pi := personalInfo(c.PIDetails)
		row := []interface{}{
			c.ID,
			pi.Name,
			pi.Email,
			string(c.Status),
			scoreCell(c.SkillsEval, "skills"),
			scoreCell(c.DesiredExpEval, "experiences"),
			sparseCell(c.SparseResume),
			c.CreatedAt.Format(time.RFC3339),
			c.UpdatedAt.Format(time.RFC3339),
		}
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range exportColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 22)
	}

	f.SetDocProps(&excelize.DocProperties{
		Title:   job.Title,
		Creator: "talent-workflow-api",
	})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

type piSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// personalInfo reads name and email out of pi_details when it is an object.
func personalInfo(raw json.RawMessage) piSummary {
	var pi piSummary
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &pi)
	}
	return pi
}

// scoreCell averages the "score" of every entry under listKey, scaled to
// 0-10 (scores at or below 1 are treated as fractions). Empty when nothing scores.
func scoreCell(raw json.RawMessage, listKey string) interface{} {
	if len(raw) == 0 {
		return ""
	}

	var doc map[string][]struct {
		Score *float64 `json:"score"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ""
	}

	var sum float64
	var n int
	for _, entry := range doc[listKey] {
		if entry.Score == nil {
			continue
		}
		s := *entry.Score
		if s <= 1 {
			s *= 10
		}
		sum += s
		n++
	}
	if n == 0 {
		return ""
	}
	return math.Round(sum/float64(n)*10) / 10
}

// sparseCell renders sparse_resume, which the runtime sends as a bool or a string.
func sparseCell(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if b {
			return "YES"
		}
		return "NO"
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
