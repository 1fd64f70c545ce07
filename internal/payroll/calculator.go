// Package payroll derives monthly and yearly salary figures plus statutory
// deductions from a raw annual employee record. Deduction policy is fixed,
// it is not configurable per record.
package payroll

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/AnuragRai017/paybot/internal/model"
	appErr "github.com/AnuragRai017/paybot/internal/pkg/errors"
)

const (
	FieldBasicSalary = "Basic Salary"
	FieldCTC         = "CTC"

	monthsPerYear = 12

	pfRate        = 0.12
	incomeTaxRate = 0.20
	// Flat monthly professional tax. The yearly view is this amount scaled
	// by 12, never recomputed.
	professionalTaxMonthly = 200.0
)

// Period selects monthly or yearly framing for deduction figures.
type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// Deduction names, in presentation order.
const (
	DeductionPF              = "Provident Fund (PF)"
	DeductionIncomeTax       = "Income Tax"
	DeductionProfessionalTax = "Professional Tax"
)

func DeductionNames() []string {
	return []string{DeductionPF, DeductionIncomeTax, DeductionProfessionalTax}
}

// Breakdown is the computed view of a single record. It is derived on every
// request and never cached.
type Breakdown struct {
	EmployeeID string
	// Yearly holds every field actually present in the record, amounts as
	// supplied. Monthly holds the same keys with numeric values divided by
	// 12 and rounded to 2 decimals; non-numeric fields pass through
	// unchanged since they are descriptive, not amounts.
	Yearly  map[string]interface{}
	Monthly map[string]interface{}

	monthlyBasic float64
}

// ComputeBreakdown derives the monthly/yearly views and the deduction base
// from a record. The record must carry a non-negative "Basic Salary";
// everything else is optional and stays absent when missing.
func ComputeBreakdown(record *model.EmployeeRecord) (*Breakdown, error) {
	if record == nil {
		return nil, fmt.Errorf("%w: %s", appErr.ErrMissingField, FieldBasicSalary)
	}
	basic, ok := Numeric(record.Fields[FieldBasicSalary])
	if !ok {
		return nil, fmt.Errorf("%w: %s", appErr.ErrMissingField, FieldBasicSalary)
	}
	if basic < 0 {
		return nil, fmt.Errorf("%w: %s must be non-negative", appErr.ErrInvalid, FieldBasicSalary)
	}
	b := &Breakdown{
		EmployeeID: record.EmployeeID,
		Yearly:     make(map[string]interface{}, len(record.Fields)),
		Monthly:    make(map[string]interface{}, len(record.Fields)),
	}
	for name, value := range record.Fields {
		b.Yearly[name] = value
		if amount, isNum := Numeric(value); isNum {
			b.Monthly[name] = round2(amount / monthsPerYear)
		} else {
			b.Monthly[name] = value
		}
	}
	b.monthlyBasic = round2(basic / monthsPerYear)
	return b, nil
}

// MonthlyBasic is the rounded monthly basic salary every percentage
// deduction is computed from.
func (b *Breakdown) MonthlyBasic() float64 {
	return b.monthlyBasic
}

// DeductionAmounts returns the deduction figures for the given period,
// keyed by deduction name. Yearly figures are the monthly amount scaled by
// 12 and rounded at the scaled value.
func (b *Breakdown) DeductionAmounts(period Period) map[string]float64 {
	monthly := map[string]float64{
		DeductionPF:              round2(b.monthlyBasic * pfRate),
		DeductionIncomeTax:       round2(b.monthlyBasic * incomeTaxRate),
		DeductionProfessionalTax: professionalTaxMonthly,
	}
	if period != PeriodYearly {
		return monthly
	}
	yearly := make(map[string]float64, len(monthly))
	for name, amount := range monthly {
		yearly[name] = round2(amount * monthsPerYear)
	}
	return yearly
}

// MonthlyPF is a convenience accessor used by the calculation explanations.
func (b *Breakdown) MonthlyPF() float64 {
	return round2(b.monthlyBasic * pfRate)
}

func (b *Breakdown) MonthlyIncomeTax() float64 {
	return round2(b.monthlyBasic * incomeTaxRate)
}

// AnnualIncome prefers the CTC field and falls back to yearly basic salary.
func (b *Breakdown) AnnualIncome() float64 {
	if ctc, ok := Numeric(b.Yearly[FieldCTC]); ok {
		return ctc
	}
	basic, _ := Numeric(b.Yearly[FieldBasicSalary])
	return basic
}

// TaxSlab is explanatory metadata only. The deduction itself is a flat
// simplified rate, not slab based.
type TaxSlab struct {
	UpTo float64
	Rate float64
}

// TaxSlabs returns the slab table surfaced in calculation explanations.
// UpTo == 0 on the last entry means no upper bound.
func TaxSlabs() []TaxSlab {
	return []TaxSlab{
		{UpTo: 250000, Rate: 0},
		{UpTo: 500000, Rate: 0.05},
		{UpTo: 1000000, Rate: 0.20},
		{UpTo: 0, Rate: 0.30},
	}
}

// Numeric coerces a record field to a float64 amount. Strings and other
// descriptive values report false.
func Numeric(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
