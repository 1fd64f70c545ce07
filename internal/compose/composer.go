// Package compose builds the user-facing answer for a classified query from
// the computed payroll figures. Every path except the fallback one is fully
// local; the fallback path consults the generation capability and degrades
// to a canned menu, so composition never returns empty text.
package compose

import (
	"context"
	"fmt"
	"html"
	"math/rand"
	"sort"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/AnuragRai017/paybot/internal/ai"
	"github.com/AnuragRai017/paybot/internal/model"
	"github.com/AnuragRai017/paybot/internal/payroll"
	"github.com/AnuragRai017/paybot/internal/pkg/mdrender"
)

// Greeting pools are cosmetic variation only.
var greetings = map[model.Category][]string{
	model.CategorySalary: {
		"Let me show you your salary breakdown 💰",
		"Here's a detailed view of your compensation 📊",
		"I'll break down your salary components 💳",
		"Here's how your salary package looks 📈",
	},
	model.CategoryDeductions: {
		"Let me explain your deductions 📋",
		"Here's what's being deducted from your salary 💸",
		"Let's look at your salary deductions 🔍",
		"Here's a breakdown of your deductions 📊",
	},
	model.CategoryCalculations: {
		"Let me explain how this is calculated 🧮",
		"Here's how we compute these numbers 📱",
		"The calculation works like this ✨",
		"Let me break down the calculation process 📝",
	},
}

const fallbackMenu = `I'm here to help! 👋 You can ask me about:

1. Your salary details 💰
2. Deductions breakdown 📊
3. How calculations work 🧮

What would you like to know? 😊`

type Composer struct {
	generator ai.IGenerator
	pick      func(n int) int
}

func New(generator ai.IGenerator) *Composer {
	return &Composer{generator: generator, pick: rand.Intn}
}

// Compose builds the response for the query. The only external dependency
// is the generation capability on the fallback path; its failure is logged
// and absorbed.
func (c *Composer) Compose(ctx context.Context, category model.Category, b *payroll.Breakdown, query string) string {
	switch category {
	case model.CategoryDeductions:
		period := payroll.PeriodMonthly
		if strings.Contains(strings.ToLower(query), "year") {
			period = payroll.PeriodYearly
		}
		return c.deductionResponse(b, period)
	case model.CategorySalary:
		return c.salaryResponse(b)
	case model.CategoryCalculations:
		return c.calculationResponse(b, query)
	default:
		return c.fallbackResponse(ctx, query)
	}
}

func (c *Composer) deductionResponse(b *payroll.Breakdown, period payroll.Period) string {
	rows := payroll.RenderTable(b, period)
	var sb strings.Builder
	sb.WriteString(c.greeting(model.CategoryDeductions))
	sb.WriteString("\n")
	sb.WriteString(tableHTML(rows, period))
	return sb.String()
}

func tableHTML(rows []payroll.TableRow, period payroll.Period) string {
	var sb strings.Builder
	sb.WriteString(`<table class="deduction-table">`)
	sb.WriteString("<tr><th>Deduction</th><th>Amount (")
	sb.WriteString(string(period))
	sb.WriteString(")</th><th>Calculation Basis</th><th>Purpose</th></tr>")
	for _, row := range rows {
		sb.WriteString("<tr><td>")
		sb.WriteString(html.EscapeString(row.Label))
		sb.WriteString("</td><td>")
		sb.WriteString(html.EscapeString(row.Amount))
		sb.WriteString("</td><td>")
		sb.WriteString(html.EscapeString(row.Basis))
		sb.WriteString("</td><td>")
		sb.WriteString(html.EscapeString(row.Purpose))
		sb.WriteString("</td></tr>")
	}
	sb.WriteString("</table>")
	return sb.String()
}

func (c *Composer) salaryResponse(b *payroll.Breakdown) string {
	names := make([]string, 0, len(b.Yearly))
	for name := range b.Yearly {
		if _, ok := payroll.Numeric(b.Yearly[name]); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	var sb strings.Builder
	sb.WriteString(c.greeting(model.CategorySalary))
	sb.WriteString("\n\n")
	for _, name := range names {
		yearly, _ := payroll.Numeric(b.Yearly[name])
		monthly, _ := payroll.Numeric(b.Monthly[name])
		fmt.Fprintf(&sb, "%s: %s per year (%s per month)\n",
			name, payroll.FormatCurrency(yearly), payroll.FormatCurrency(monthly))
	}
	sb.WriteString("\nWant to know more about any component? Just ask! 😊")
	return sb.String()
}

func (c *Composer) calculationResponse(b *payroll.Breakdown, query string) string {
	lowered := strings.ToLower(query)
	if strings.Contains(lowered, "pf") {
		return fmt.Sprintf(`Let me explain how your PF is calculated 🧮

%s

For your salary:
Basic Salary: %s per month
Monthly PF (12%%): %s

This contribution helps build your retirement savings! 💰
Would you like to know about other calculations? 🤔`,
			pfExplanation, payroll.FormatCurrency(b.MonthlyBasic()), payroll.FormatCurrency(b.MonthlyPF()))
	}
	if strings.Contains(lowered, "tax") {
		return fmt.Sprintf(`Here's how your income tax is calculated 📊

%s

Your Annual Income: %s
Monthly Tax Deduction: %s

Want to learn about tax-saving investments? Just ask! 💡`,
			taxExplanation(), payroll.FormatCurrency(b.AnnualIncome()), payroll.FormatCurrency(b.MonthlyIncomeTax()))
	}
	return fmt.Sprintf(`Let me explain how your deductions are calculated 🎯

1. PF Calculation:
%s

2. Income Tax:
%s

3. Professional Tax:
%s

Which calculation would you like me to explain in detail? 🤔`,
		pfExplanation, taxExplanation(), professionalTaxExplanation)
}

const pfExplanation = "Provident Fund is 12% of your monthly basic salary, set aside for retirement."

const professionalTaxExplanation = "Professional Tax is a fixed ₹200 deducted every month, a levy set by the state government."

// The deduction itself uses a simplified flat rate; the slab table is
// surfaced for explanation only.
func taxExplanation() string {
	var sb strings.Builder
	sb.WriteString("We apply a simplified flat 20% of your monthly basic salary. The actual slab rates are:")
	for _, slab := range payroll.TaxSlabs() {
		if slab.UpTo == 0 {
			fmt.Fprintf(&sb, "\n- Above that: %.0f%%", slab.Rate*100)
			continue
		}
		fmt.Fprintf(&sb, "\n- Up to %s: %.0f%%", payroll.FormatCurrency(slab.UpTo), slab.Rate*100)
	}
	return sb.String()
}

func (c *Composer) fallbackResponse(ctx context.Context, query string) string {
	if c.generator != nil {
		prompt := fmt.Sprintf("You are a helpful salary assistant. The user asked: %s. Respond in a friendly, concise way.", query)
		text, err := c.generator.Generate(ctx, prompt)
		if err == nil && strings.TrimSpace(text) != "" {
			return mdrender.ToHTML(text)
		}
		logutil.GetLogger(ctx).Warn("generation unavailable, serving canned menu", zap.Error(err))
	}
	return fallbackMenu
}

func (c *Composer) greeting(category model.Category) string {
	pool := greetings[category]
	if len(pool) == 0 {
		return ""
	}
	return pool[c.pick(len(pool))]
}
