package price_table_service

import (
	"github.com/init-pkg/print-pricing/domain/app"
	"github.com/init-pkg/print-pricing/internal/errs"
)

// loadExamples reads question / wrong answer / correct answer triples, skipping the header row.
func (this *Service) loadExamples(sheets []*sheetGrid, src app.PriceSource) ([]app.PricingExample, error) {
	if src.ExamplesSheet == "" {
		return nil, nil
	}

	sheet := findSheet(sheets, src.ExamplesSheet)
	if sheet == nil {
		return nil, errs.Newf(errs.KindConfiguration, "examples sheet %q not found in price source", src.ExamplesSheet)
	}

	var examples []app.PricingExample
	for r := 1; r < len(sheet.rows); r++ {
		if nonEmptyInRow(sheet.rows, r, 0, 2) < 3 {
			continue
		}
		examples = append(examples, app.PricingExample{
			Question: sheet.cell(r, 0),
			Wrong:    sheet.cell(r, 1),
			Correct:  sheet.cell(r, 2),
		})
	}
	return examples, nil
}
