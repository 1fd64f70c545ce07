package compose

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AnuragRai017/paybot/internal/model"
	"github.com/AnuragRai017/paybot/internal/payroll"
)

type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return f.text, f.err
}

func breakdown(t *testing.T, fields map[string]interface{}) *payroll.Breakdown {
	t.Helper()
	b, err := payroll.ComputeBreakdown(&model.EmployeeRecord{EmployeeID: "E1", Fields: fields})
	require.NoError(t, err)
	return b
}

func newTestComposer(gen *fakeGenerator) *Composer {
	c := New(gen)
	c.pick = func(n int) int { return 0 }
	return c
}

func TestCompose_DeductionsYearlyTable(t *testing.T) {
	c := newTestComposer(nil)
	b := breakdown(t, map[string]interface{}{"Basic Salary": 600000.0})

	out := c.Compose(context.Background(), model.CategoryDeductions, b, "What is my PF deduction this year?")
	require.Contains(t, out, "<table")
	require.Contains(t, out, "₹72,000.00")
	require.Contains(t, out, "yearly")
}

func TestCompose_DeductionsMonthlyByDefault(t *testing.T) {
	c := newTestComposer(nil)
	b := breakdown(t, map[string]interface{}{"Basic Salary": 600000.0})

	out := c.Compose(context.Background(), model.CategoryDeductions, b, "what gets deducted?")
	require.Contains(t, out, "₹6,000.00")
	require.Contains(t, out, "monthly")
	require.NotContains(t, out, "₹72,000.00")
}

func TestCompose_SalaryBreakdown(t *testing.T) {
	c := newTestComposer(nil)
	b := breakdown(t, map[string]interface{}{
		"Basic Salary": 600000.0,
		"HRA":          240000.0,
		"Designation":  "Engineer",
	})

	out := c.Compose(context.Background(), model.CategorySalary, b, "show my salary")
	require.Contains(t, out, greetings[model.CategorySalary][0])
	require.Contains(t, out, "Basic Salary: ₹600,000.00 per year (₹50,000.00 per month)")
	require.Contains(t, out, "HRA: ₹240,000.00 per year (₹20,000.00 per month)")
	require.NotContains(t, out, "Designation")
}

func TestCompose_CalculationsPFBranch(t *testing.T) {
	c := newTestComposer(nil)
	b := breakdown(t, map[string]interface{}{"Basic Salary": 600000.0})

	out := c.Compose(context.Background(), model.CategoryCalculations, b, "how is my pf computed")
	require.Contains(t, out, "₹50,000.00")
	require.Contains(t, out, "₹6,000.00")
}

func TestCompose_CalculationsTaxBranch(t *testing.T) {
	c := newTestComposer(nil)
	b := breakdown(t, map[string]interface{}{
		"Basic Salary": 600000.0,
		"CTC":          900000.0,
	})

	out := c.Compose(context.Background(), model.CategoryCalculations, b, "how is my tax computed")
	require.Contains(t, out, "₹900,000.00")
	require.Contains(t, out, "₹10,000.00")
}

func TestCompose_CalculationsGeneric(t *testing.T) {
	c := newTestComposer(nil)
	b := breakdown(t, map[string]interface{}{"Basic Salary": 600000.0})

	out := c.Compose(context.Background(), model.CategoryCalculations, b, "explain my calculations")
	require.Contains(t, out, "1. PF Calculation:")
	require.Contains(t, out, "2. Income Tax:")
	require.Contains(t, out, "3. Professional Tax:")
	// Generic branch carries no per-employee numbers.
	require.NotContains(t, out, "₹50,000.00")
}

func TestCompose_FallbackDelegatesToGenerator(t *testing.T) {
	c := newTestComposer(&fakeGenerator{text: "Happy to help with that."})
	b := breakdown(t, map[string]interface{}{"Basic Salary": 600000.0})

	out := c.Compose(context.Background(), model.CategoryFallback, b, "tell me a joke")
	require.Contains(t, out, "Happy to help with that.")
}

func TestCompose_FallbackCannedMenuOnGeneratorFailure(t *testing.T) {
	c := newTestComposer(&fakeGenerator{err: errors.New("backend down")})
	b := breakdown(t, map[string]interface{}{"Basic Salary": 600000.0})

	out := c.Compose(context.Background(), model.CategoryFallback, b, "tell me a joke")
	require.Equal(t, fallbackMenu, out)
}

func TestCompose_FallbackWithoutGenerator(t *testing.T) {
	c := newTestComposer(nil)
	c.generator = nil
	b := breakdown(t, map[string]interface{}{"Basic Salary": 600000.0})

	out := c.Compose(context.Background(), model.CategoryFallback, b, "anything")
	require.Equal(t, fallbackMenu, out)
}

func TestCompose_NeverEmpty(t *testing.T) {
	c := newTestComposer(&fakeGenerator{err: errors.New("down")})
	b := breakdown(t, map[string]interface{}{"Basic Salary": 600000.0})
	for _, category := range []model.Category{
		model.CategorySalary,
		model.CategoryDeductions,
		model.CategoryCalculations,
		model.CategoryFallback,
	} {
		out := c.Compose(context.Background(), category, b, "anything about the year")
		require.NotEmpty(t, strings.TrimSpace(out), "category %s", category)
	}
}

func TestGreetingComesFromPool(t *testing.T) {
	c := New(nil)
	b := breakdown(t, map[string]interface{}{"Basic Salary": 600000.0})
	for i := 0; i < 20; i++ {
		out := c.Compose(context.Background(), model.CategorySalary, b, "salary")
		found := false
		for _, g := range greetings[model.CategorySalary] {
			if strings.HasPrefix(out, g) {
				found = true
				break
			}
		}
		require.True(t, found, "greeting not from pool: %q", out)
	}
}
