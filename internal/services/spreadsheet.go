package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrEmptyFile = errors.New("file is empty")

// Table is the untyped tabular stage between file parsing and schema
// validation. Rows may be ragged; a cell missing from a short row counts as
// empty.
type Table struct {
	Columns []string
	Rows    [][]string
}

func AcceptedUploadExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", ".csv":
		return true
	default:
		return false
	}
}

func ParseUpload(filename string, contents []byte) (*Table, error) {
	if strings.ToLower(filepath.Ext(filename)) == ".csv" {
		return parseCSV(contents)
	}
	return parseWorkbook(contents)
}

func parseWorkbook(contents []byte) (*Table, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(contents))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return tableFromRows(rows)
}

func parseCSV(contents []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(contents))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return tableFromRows(rows)
}

func tableFromRows(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	columns := make([]string, len(rows[0]))
	for index, cell := range rows[0] {
		columns[index] = strings.ToLower(strings.TrimSpace(cell))
	}
	return &Table{Columns: columns, Rows: rows[1:]}, nil
}
