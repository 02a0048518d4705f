package price_table_service

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/init-pkg/print-pricing/domain/app"
	"github.com/init-pkg/print-pricing/internal/config"
	"github.com/init-pkg/print-pricing/internal/errs"
)

type Service struct {
	client *http.Client
	log    *slog.Logger
}

var _ app.PriceTableLoader = &Service{}

func New(cfg *config.Config, log *slog.Logger) *Service {
	return &Service{
		client: &http.Client{Timeout: cfg.PriceSource.FetchTimeout},
		log:    log,
	}
}

// Load fetches the price source and builds the table. Every error is either
// configuration or source_unavailable; both are meant to stop the process.
func (this *Service) Load(ctx context.Context, src app.PriceSource) (*app.PriceTable, error) {
	if strings.TrimSpace(src.Location) == "" {
		return nil, errs.New(errs.KindConfiguration, "price source location is empty")
	}
	if src.Layout == "" {
		src.Layout = config.LayoutAuto
	}

	this.log.Info("Price table loading started", "location", redactLocation(src.Location), "sheet", src.Sheet)

	raw, err := this.fetch(ctx, src.Location)
	if err != nil {
		return nil, err
	}

	format := detectFormat(src.Format, raw)
	sheets, err := decode(format, raw.body)
	if err != nil {
		return nil, err
	}

	selected, err := this.selectSheets(sheets, src, format)
	if err != nil {
		return nil, err
	}

	var (
		rows   []app.PriceRow
		parsed int
	)
	for _, sheet := range selected {
		sheetRows, stats, ok, err := this.parseSheet(sheet, src)
		if err != nil {
			return nil, err
		}
		if !ok {
			this.log.Warn("Sheet skipped - no price header", "sheet", sheet.name, "layout", src.Layout)
			continue
		}
		parsed++
		rows = append(rows, sheetRows...)
		this.log.Info("Parsed price sheet",
			"sheet", sheet.name,
			"kept", stats.kept,
			"dropped", stats.dropped,
			"filtered", stats.filtered)
	}

	if parsed == 0 {
		return nil, this.headerMissing(src)
	}
	if len(rows) == 0 {
		return nil, errs.New(errs.KindConfiguration, "price source has no valid price rows")
	}

	examples, err := this.loadExamples(sheets, src)
	if err != nil {
		return nil, err
	}

	table := app.NewPriceTable(rows, examples)
	for _, issue := range table.BandIssues() {
		this.log.Warn("Price band issue", "issue", issue)
	}

	this.log.Info("Price table loaded",
		"format", format,
		"rows", table.Len(),
		"modes", table.Modes(),
		"examples", len(examples))
	return table, nil
}

func (this *Service) selectSheets(sheets []*sheetGrid, src app.PriceSource, format string) ([]*sheetGrid, error) {
	if format == config.FormatCSV {
		if src.Sheet != "" {
			this.log.Warn("Sheet name ignored for csv source", "sheet", src.Sheet)
		}
		return sheets, nil
	}

	if src.Sheet != "" {
		sheet := findSheet(sheets, src.Sheet)
		if sheet == nil {
			return nil, errs.Newf(errs.KindConfiguration, "sheet %q not found in price source", src.Sheet)
		}
		return []*sheetGrid{sheet}, nil
	}

	selected := make([]*sheetGrid, 0, len(sheets))
	for _, sheet := range sheets {
		if src.ExamplesSheet != "" && sheet.name == src.ExamplesSheet {
			continue
		}
		selected = append(selected, sheet)
	}
	return selected, nil
}

func findSheet(sheets []*sheetGrid, name string) *sheetGrid {
	for _, sheet := range sheets {
		if sheet.name == name {
			return sheet
		}
	}
	return nil
}

// parseSheet returns ok=false when the sheet has no recognizable header for the layout.
func (this *Service) parseSheet(sheet *sheetGrid, src app.PriceSource) ([]app.PriceRow, parseStats, bool, error) {
	if src.Layout != config.LayoutPivot {
		if cols, found := findFlatHeader(sheet, src.FilterColumn); found {
			rows, stats, err := parseFlat(sheet, cols, src)
			return rows, stats, true, err
		}
		if src.Layout == config.LayoutFlat {
			return nil, parseStats{}, false, nil
		}
	}

	rows, stats, found := parsePivot(sheet, src.HeaderMarker)
	return rows, stats, found, nil
}

func (this *Service) headerMissing(src app.PriceSource) error {
	switch src.Layout {
	case config.LayoutFlat:
		return errs.Newf(errs.KindConfiguration, "no sheet has the %s, %s, %s, %s columns",
			columnMinQty, columnMaxQty, columnMode, columnUnitPrice)
	case config.LayoutPivot:
		return errs.Newf(errs.KindConfiguration, "header marker %q not found", src.HeaderMarker)
	default:
		return errs.Newf(errs.KindConfiguration, "neither flat price columns nor header marker %q found", src.HeaderMarker)
	}
}

// redactLocation drops the query string, which may carry access tokens.
func redactLocation(location string) string {
	if i := strings.IndexByte(location, '?'); i >= 0 {
		return location[:i]
	}
	return location
}
