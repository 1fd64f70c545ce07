package payroll

import (
	"fmt"
	"strings"
)

// TableRow is one rendered deduction line: label, currency formatted
// amount, how it is computed and what it is for.
type TableRow struct {
	Label   string `json:"label"`
	Amount  string `json:"amount"`
	Basis   string `json:"basis"`
	Purpose string `json:"purpose"`
}

type deductionText struct {
	monthlyBasis string
	yearlyBasis  string
	purpose      string
}

// Basis and purpose text is static per deduction type, only the period
// framing varies.
var deductionTexts = map[string]deductionText{
	DeductionPF: {
		monthlyBasis: "12% of monthly basic salary",
		yearlyBasis:  "12% of monthly basic salary, over 12 months",
		purpose:      "Mandatory retirement savings contribution",
	},
	DeductionIncomeTax: {
		monthlyBasis: "Simplified flat 20% of monthly basic salary",
		yearlyBasis:  "Simplified flat 20% of monthly basic salary, over 12 months",
		purpose:      "Tax on income payable to the government",
	},
	DeductionProfessionalTax: {
		monthlyBasis: "Fixed ₹200 per month",
		yearlyBasis:  "Fixed ₹200 per month, over 12 months",
		purpose:      "State government employment levy",
	},
}

// RenderTable turns a breakdown into deduction table rows for the given
// period. Pure and deterministic, one row per deduction in a fixed order.
func RenderTable(b *Breakdown, period Period) []TableRow {
	amounts := b.DeductionAmounts(period)
	rows := make([]TableRow, 0, len(amounts))
	for _, name := range DeductionNames() {
		text := deductionTexts[name]
		basis := text.monthlyBasis
		if period == PeriodYearly {
			basis = text.yearlyBasis
		}
		rows = append(rows, TableRow{
			Label:   name,
			Amount:  FormatCurrency(amounts[name]),
			Basis:   basis,
			Purpose: text.purpose,
		})
	}
	return rows
}

// FormatCurrency renders an amount as ₹-prefixed text with two decimals
// and thousands separators, e.g. ₹1,234,567.89.
func FormatCurrency(amount float64) string {
	negative := amount < 0
	text := fmt.Sprintf("%.2f", amount)
	text = strings.TrimPrefix(text, "-")
	parts := strings.SplitN(text, ".", 2)
	intPart, fracPart := parts[0], parts[1]
	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}
	sign := ""
	if negative {
		sign = "-"
	}
	return "₹" + sign + grouped.String() + "." + fracPart
}
