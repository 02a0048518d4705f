package price_table_service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// sheetGrid: прямоугольная сетка обрезанных строковых ячеек одного листа
type sheetGrid struct {
	name string
	rows [][]string
}

func (this *sheetGrid) cell(r, c int) string {
	if r < 0 || r >= len(this.rows) || c < 0 || c >= len(this.rows[r]) {
		return ""
	}
	return this.rows[r][c]
}

func (this *sheetGrid) width() int {
	if len(this.rows) == 0 {
		return 0
	}
	return len(this.rows[0])
}

func readCSV(raw []byte) ([]*sheetGrid, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, record)
	}

	return []*sheetGrid{{name: "", rows: normalizeGrid(rows)}}, nil
}

func readXLSX(raw []byte) ([]*sheetGrid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sheets []*sheetGrid
	for _, name := range f.GetSheetList() {
		grid, err := getFilledGrid(f, name)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, &sheetGrid{name: name, rows: grid})
	}
	return sheets, nil
}

func getFilledGrid(f *excelize.File, sheet string) ([][]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	grid := normalizeGrid(rows)
	if len(grid) == 0 {
		return grid, nil
	}

	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, err
	}
	// значение объединённой ячейки копируем во все клетки диапазона
	for _, merge := range merges {
		val := strings.TrimSpace(merge.GetCellValue())
		startCol, startRow, err := excelize.CellNameToCoordinates(merge.GetStartAxis())
		if err != nil {
			continue
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(merge.GetEndAxis())
		if err != nil {
			continue
		}
		for r := startRow - 1; r <= endRow-1; r++ {
			for c := startCol - 1; c <= endCol-1; c++ {
				if r < len(grid) && c < len(grid[r]) {
					grid[r][c] = val
				}
			}
		}
	}

	return grid, nil
}

// normalizeGrid pads rows to the widest row and trims every cell.
func normalizeGrid(rows [][]string) [][]string {
	maxCol := 0
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}

	grid := make([][]string, len(rows))
	for i, row := range rows {
		grid[i] = make([]string, maxCol)
		for j, cell := range row {
			grid[i][j] = strings.TrimSpace(cell)
		}
	}
	return grid
}

func nonEmptyInRow(rows [][]string, r, c1, c2 int) (cnt int) {
	if r >= len(rows) {
		return 0
	}
	for c := c1; c <= c2; c++ {
		if c >= 0 && c < len(rows[r]) && rows[r][c] != "" {
			cnt++
		}
	}
	return
}

func rowIsBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
