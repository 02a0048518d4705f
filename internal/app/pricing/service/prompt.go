package pricing_service

import (
	"math"
	"strconv"
	"strings"

	"github.com/init-pkg/print-pricing/domain/app"
)

const answerTemplate = "Cena: <total> EUR (<unit price> EUR/gab.)"

const tableHeader = "MinQty | MaxQty | Mode | UnitPrice"

// renderTable serializes rows in table order. The output depends only on the rows.
func renderTable(table *app.PriceTable) string {
	var b strings.Builder
	b.WriteString(tableHeader)
	b.WriteByte('\n')
	for _, row := range table.Rows() {
		b.WriteString(formatBound(row.MinQty))
		b.WriteString(" | ")
		b.WriteString(formatBound(row.MaxQty))
		b.WriteString(" | ")
		b.WriteString(row.Mode)
		b.WriteString(" | ")
		b.WriteString(row.UnitPrice.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func formatBound(v float64) string {
	if math.IsInf(v, 1) {
		return "∞"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func renderExamples(examples []app.PricingExample) string {
	var b strings.Builder
	for i, ex := range examples {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". Question: ")
		b.WriteString(ex.Question)
		b.WriteString("\n   Wrong: ")
		b.WriteString(ex.Wrong)
		b.WriteString("\n   Correct: ")
		b.WriteString(ex.Correct)
		b.WriteByte('\n')
	}
	return b.String()
}

// renderInstruction builds the system instruction sent with every question.
func renderInstruction(table *app.PriceTable) string {
	var b strings.Builder

	b.WriteString("You are a pricing calculator for a print shop. ")
	b.WriteString("Answer only from the price table below; do not invent prices.\n\n")

	b.WriteString("Price table (quantities are inclusive, ∞ means no upper limit, prices in EUR per unit):\n")
	b.WriteString(renderTable(table))

	if examples := table.Examples(); len(examples) > 0 {
		b.WriteString("\nWorked examples. Avoid the wrong answers and follow the correct ones:\n")
		b.WriteString(renderExamples(examples))
	}

	b.WriteString("\nFollow these steps:\n")
	b.WriteString("1. Extract the quantity and the print mode from the question.\n")
	b.WriteString("2. Find the row whose Mode matches and whose MinQty..MaxQty range contains the quantity. ")
	b.WriteString("If several rows match, use the first one listed.\n")
	b.WriteString("3. Multiply the quantity by that row's UnitPrice.\n")
	b.WriteString("4. Reply with exactly one line in this format, the total with two decimal places: ")
	b.WriteString(answerTemplate)
	b.WriteString("\n")

	return b.String()
}
