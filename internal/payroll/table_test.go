package payroll

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AnuragRai017/paybot/internal/model"
)

func TestRenderTable_YearlyRows(t *testing.T) {
	b, err := ComputeBreakdown(&model.EmployeeRecord{
		EmployeeID: "E1",
		Fields:     map[string]interface{}{"Basic Salary": 600000.0},
	})
	require.NoError(t, err)

	rows := RenderTable(b, PeriodYearly)
	require.Len(t, rows, 3)
	require.Equal(t, DeductionPF, rows[0].Label)
	require.Equal(t, "₹72,000.00", rows[0].Amount)
	require.Equal(t, DeductionIncomeTax, rows[1].Label)
	require.Equal(t, "₹120,000.00", rows[1].Amount)
	require.Equal(t, DeductionProfessionalTax, rows[2].Label)
	require.Equal(t, "₹2,400.00", rows[2].Amount)
	for _, row := range rows {
		require.NotEmpty(t, row.Basis)
		require.NotEmpty(t, row.Purpose)
		require.Contains(t, row.Basis, "12 months")
	}
}

func TestRenderTable_Deterministic(t *testing.T) {
	b, err := ComputeBreakdown(&model.EmployeeRecord{
		EmployeeID: "E1",
		Fields:     map[string]interface{}{"Basic Salary": 480000.0},
	})
	require.NoError(t, err)
	first := RenderTable(b, PeriodMonthly)
	second := RenderTable(b, PeriodMonthly)
	require.Equal(t, first, second)
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₹0.00"},
		{200, "₹200.00"},
		{2400, "₹2,400.00"},
		{72000, "₹72,000.00"},
		{1234567.891, "₹1,234,567.89"},
		{-999.5, "₹-999.50"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, FormatCurrency(tt.amount))
	}
}
