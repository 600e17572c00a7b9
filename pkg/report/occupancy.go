// Package report renders engine output into operator-facing xlsx files.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ashgrove-care/bedplanner/pkg/core/model"
	"github.com/ashgrove-care/bedplanner/pkg/core/placement"
)

var moveHeaders = []string{
	"Type", "Resident", "From Bed", "To Bed", "Room", "Reason", "Impact", "Age Score", "Diagnosis Score",
}

var unplacedHeaders = []string{
	"Resident", "Gender", "Diagnosis", "Isolation",
}

// WriteOccupancyReport writes the optimizer's recommendations and the list
// of unplaced residents to an xlsx workbook at path.
func WriteOccupancyReport(path string, unplaced []model.Person, moves []placement.MoveRecommendation) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeMovesSheet(f, moves); err != nil {
		return err
	}
	if err := writeUnplacedSheet(f, unplaced); err != nil {
		return err
	}
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func writeMovesSheet(f *excelize.File, moves []placement.MoveRecommendation) error {
	const sheet = "Recommendations"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	if err := writeRow(f, sheet, 1, toCells(moveHeaders)); err != nil {
		return err
	}
	for i, m := range moves {
		ageScore, diagScore := "", ""
		if m.Compatibility != nil {
			ageScore = fmt.Sprintf("%d", m.Compatibility.Age)
			diagScore = fmt.Sprintf("%d", m.Compatibility.Diagnosis)
		}
		row := []any{
			string(m.Kind), m.PersonName, m.FromBedID, m.ToBedID,
			m.ToRoomNumber, m.Reason, m.Impact, ageScore, diagScore,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeUnplacedSheet(f *excelize.File, unplaced []model.Person) error {
	const sheet = "Unplaced Residents"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := writeRow(f, sheet, 1, toCells(unplacedHeaders)); err != nil {
		return err
	}
	for i, p := range unplaced {
		isolation := "no"
		if p.Isolation {
			isolation = "yes"
		}
		row := []any{p.FullName(), string(p.Gender), p.Diagnosis, isolation}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}
	return nil
}

func toCells(headers []string) []any {
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}
