package price_table_service

import (
	"strings"

	"github.com/init-pkg/print-pricing/domain/app"
	"github.com/init-pkg/print-pricing/internal/errs"
)

const (
	columnMinQty    = "MinQty"
	columnMaxQty    = "MaxQty"
	columnMode      = "Mode"
	columnUnitPrice = "UnitPrice"
)

type flatColumns struct {
	header    int
	minQty    int
	maxQty    int
	mode      int
	unitPrice int
	filter    int
}

// findFlatHeader returns the first row carrying all four named columns.
func findFlatHeader(sheet *sheetGrid, filterColumn string) (flatColumns, bool) {
	for r, row := range sheet.rows {
		cols := flatColumns{header: r, minQty: -1, maxQty: -1, mode: -1, unitPrice: -1, filter: -1}
		for c, cell := range row {
			switch {
			case strings.EqualFold(cell, columnMinQty) && cols.minQty < 0:
				cols.minQty = c
			case strings.EqualFold(cell, columnMaxQty) && cols.maxQty < 0:
				cols.maxQty = c
			case strings.EqualFold(cell, columnMode) && cols.mode < 0:
				cols.mode = c
			case strings.EqualFold(cell, columnUnitPrice) && cols.unitPrice < 0:
				cols.unitPrice = c
			case filterColumn != "" && strings.EqualFold(cell, filterColumn) && cols.filter < 0:
				cols.filter = c
			}
		}
		if cols.minQty >= 0 && cols.maxQty >= 0 && cols.mode >= 0 && cols.unitPrice >= 0 {
			return cols, true
		}
	}
	return flatColumns{}, false
}

type parseStats struct {
	kept     int
	dropped  int
	filtered int
}

func parseFlat(sheet *sheetGrid, cols flatColumns, src app.PriceSource) ([]app.PriceRow, parseStats, error) {
	var stats parseStats

	if src.FilterColumn != "" && cols.filter < 0 {
		return nil, stats, errs.Newf(errs.KindConfiguration, "sheet %q: filter column %q not found next to %s/%s/%s/%s",
			sheet.name, src.FilterColumn, columnMinQty, columnMaxQty, columnMode, columnUnitPrice)
	}

	var rows []app.PriceRow
	for r := cols.header + 1; r < len(sheet.rows); r++ {
		if rowIsBlank(sheet.rows[r]) {
			continue
		}

		if cols.filter >= 0 && !strings.EqualFold(sheet.cell(r, cols.filter), src.FilterValue) {
			stats.filtered++
			continue
		}

		row, ok := flatRow(sheet, r, cols)
		if !ok {
			stats.dropped++
			continue
		}
		rows = append(rows, row)
		stats.kept++
	}
	return rows, stats, nil
}

// flatRow converts one data row; any unparseable bound, blank mode or bad price rejects it.
func flatRow(sheet *sheetGrid, r int, cols flatColumns) (app.PriceRow, bool) {
	minQty, ok := parseQuantity(sheet.cell(r, cols.minQty))
	if !ok {
		return app.PriceRow{}, false
	}
	maxQty, ok := parseUpperBound(sheet.cell(r, cols.maxQty))
	if !ok || minQty > maxQty {
		return app.PriceRow{}, false
	}
	mode := sheet.cell(r, cols.mode)
	if mode == "" {
		return app.PriceRow{}, false
	}
	price, ok := parsePrice(sheet.cell(r, cols.unitPrice))
	if !ok {
		return app.PriceRow{}, false
	}

	return app.PriceRow{MinQty: minQty, MaxQty: maxQty, Mode: mode, UnitPrice: price}, true
}
