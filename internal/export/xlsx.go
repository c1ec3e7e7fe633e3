// Package export writes student records to spreadsheet files.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"student-records/internal/models"
)

// SheetName is the worksheet holding exported records
const SheetName = "Students"

// Header is the first row of every export
var Header = []string{"RollNo", "Name", "FathersName", "Subject", "Grade"}

// ErrNoRecords is returned when there is nothing to export
var ErrNoRecords = errors.New("there is no data to export")

// WriteXLSX encodes records as an xlsx workbook into w.
func WriteXLSX(w io.Writer, records []models.StudentRecord) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	f, err := build(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes records to a workbook at path, replacing any existing file.
func SaveXLSX(path string, records []models.StudentRecord) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := WriteXLSX(out, records); err != nil {
		out.Close()
		os.Remove(path)
		return err
	}
	return out.Close()
}

func build(records []models.StudentRecord) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "E1", bold); err != nil {
		f.Close()
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []interface{}{r.RollNo, r.Name, r.FathersName, r.Subject, r.Grade}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "E", 18); err != nil {
		f.Close()
		return nil, fmt.Errorf("set column width: %w", err)
	}
	return f, nil
}
