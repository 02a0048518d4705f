package price_table_service

import (
	"strings"

	"github.com/init-pkg/print-pricing/domain/app"
)

type rangeColumn struct {
	col    int
	minQty float64
	maxQty float64
}

// findMarkerRows returns every (row, col) whose cell equals the marker.
// The first matching cell of a row wins.
func findMarkerRows(sheet *sheetGrid, marker string) [][2]int {
	var hits [][2]int
	for r, row := range sheet.rows {
		for c, cell := range row {
			if cell != "" && strings.EqualFold(cell, marker) {
				hits = append(hits, [2]int{r, c})
				break
			}
		}
	}
	return hits
}

func isMarkerRow(sheet *sheetGrid, r int, marker string) bool {
	for _, cell := range sheet.rows[r] {
		if cell != "" && strings.EqualFold(cell, marker) {
			return true
		}
	}
	return false
}

// rangeColumns reads the labels right of the marker; unreadable labels skip their column.
func rangeColumns(sheet *sheetGrid, r, markerCol int) ([]rangeColumn, int) {
	var (
		ranges  []rangeColumn
		skipped int
	)
	for c := markerCol + 1; c < sheet.width(); c++ {
		label := sheet.cell(r, c)
		if label == "" {
			continue
		}
		lo, hi, ok := parseRange(label)
		if !ok {
			skipped++
			continue
		}
		ranges = append(ranges, rangeColumn{col: c, minQty: lo, maxQty: hi})
	}
	return ranges, skipped
}

// parsePivot walks each marker block: the marker row labels ranges, the rows below
// (until a blank row or the next marker) carry a mode name and per-range unit prices.
func parsePivot(sheet *sheetGrid, marker string) ([]app.PriceRow, parseStats, bool) {
	var (
		stats parseStats
		rows  []app.PriceRow
	)

	hits := findMarkerRows(sheet, marker)
	if len(hits) == 0 {
		return nil, stats, false
	}

	for _, hit := range hits {
		headerRow, markerCol := hit[0], hit[1]
		ranges, skipped := rangeColumns(sheet, headerRow, markerCol)
		stats.dropped += skipped
		if len(ranges) == 0 {
			continue
		}
		lastCol := ranges[len(ranges)-1].col

		for r := headerRow + 1; r < len(sheet.rows); r++ {
			if nonEmptyInRow(sheet.rows, r, markerCol, lastCol) == 0 || isMarkerRow(sheet, r, marker) {
				break
			}

			mode := sheet.cell(r, markerCol)
			if mode == "" {
				mode = strings.TrimSpace(sheet.name)
			}
			if mode == "" {
				stats.dropped += len(ranges)
				continue
			}

			for _, rc := range ranges {
				cell := sheet.cell(r, rc.col)
				if cell == "" {
					continue
				}
				price, ok := parsePrice(cell)
				if !ok {
					stats.dropped++
					continue
				}
				rows = append(rows, app.PriceRow{
					MinQty:    rc.minQty,
					MaxQty:    rc.maxQty,
					Mode:      mode,
					UnitPrice: price,
				})
				stats.kept++
			}
		}
	}

	return rows, stats, true
}
