package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// table 以欄名存取的原始表格；第一列為標題
type table struct {
	source  string
	columns map[string]int
	rows    [][]string
}

// readTable 依副檔名讀取 .xlsx 或 .csv
func readTable(path, sheet string) (*table, error) {
	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		records, err = readXLSX(path, sheet)
	case ".csv":
		records, err = readCSV(path)
	default:
		return nil, newLoadError(path, "unsupported table format", nil)
	}
	if err != nil {
		return nil, newLoadError(path, "unreadable source", err)
	}
	if len(records) == 0 {
		return nil, newLoadError(path, "empty source", nil)
	}

	columns := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		key := normalizeHeader(h)
		if key == "" {
			continue
		}
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}

	return &table{source: path, columns: columns, rows: records[1:]}, nil
}

func readXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	return f.GetRows(sheet)
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return records, nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// column 回傳第一個存在的別名欄位索引
func (t *table) column(aliases ...string) (int, error) {
	for _, a := range aliases {
		if idx, ok := t.columns[normalizeHeader(a)]; ok {
			return idx, nil
		}
	}
	return -1, newLoadError(t.source, fmt.Sprintf("column %q not found", aliases[0]), ErrMissingColumn)
}

// cell 取出儲存格；GetRows 會截掉尾端空白格，超出範圍視為空字串
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
