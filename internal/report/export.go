package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	scoresSheet = "Scores"
	reviewSheet = "Review"
)

// ExportXLSX writes the report as a workbook with a Scores sheet (one row
// per standard) and a Review sheet (one row per flagged question).
func ExportXLSX(w io.Writer, r *Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", scoresSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headers := []any{"Standard", "Score", "Max Score", "Percent"}
	if err := f.SetSheetRow(scoresSheet, "A1", &headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	norm := r.NormalizedScores()
	for i, s := range r.StandardScores {
		maxScore := s.MaxScore
		if maxScore <= 0 {
			maxScore = DefaultMaxScore
		}
		row := []any{s.StandardName, s.Score, maxScore, norm[i].Percent}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(scoresSheet, cell, &row); err != nil {
			return fmt.Errorf("write score row: %w", err)
		}
	}

	totalRow := len(r.StandardScores) + 3
	total := []any{"Total", r.TotalScore.ScoreRatioString, "", r.TotalScore.ScoreRatio}
	cell, err := excelize.CoordinatesToCellName(1, totalRow)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(scoresSheet, cell, &total); err != nil {
		return fmt.Errorf("write total row: %w", err)
	}

	if _, err := f.NewSheet(reviewSheet); err != nil {
		return fmt.Errorf("create review sheet: %w", err)
	}
	reviewHeaders := []any{"Standard", "Question", "Answer"}
	if err := f.SetSheetRow(reviewSheet, "A1", &reviewHeaders); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	rowIndex := 2
	for _, flagged := range r.NoOrNotApplicable {
		for _, p := range flagged.QnaPairs {
			row := []any{flagged.StandardName, p.Question, string(p.Answer)}
			cell, err := excelize.CoordinatesToCellName(1, rowIndex)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(reviewSheet, cell, &row); err != nil {
				return fmt.Errorf("write review row: %w", err)
			}
			rowIndex++
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
