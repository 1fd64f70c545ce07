package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AnuragRai017/paybot/internal/ai"
	"github.com/AnuragRai017/paybot/internal/classify"
	"github.com/AnuragRai017/paybot/internal/compose"
	"github.com/AnuragRai017/paybot/internal/history"
	"github.com/AnuragRai017/paybot/internal/model"
	"github.com/AnuragRai017/paybot/internal/payroll"
	appErr "github.com/AnuragRai017/paybot/internal/pkg/errors"
)

type memProvider struct {
	records map[string]*model.EmployeeRecord
}

func (p *memProvider) Get(ctx context.Context, employeeID string) (*model.EmployeeRecord, error) {
	record, ok := p.records[employeeID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	return record, nil
}

func (p *memProvider) IDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(p.records))
	for id := range p.records {
		ids = append(ids, id)
	}
	return ids, nil
}

type downEmbedder struct{}

func (downEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	return nil, ai.ErrUnavailable
}

func (downEmbedder) ModelName() string { return "down" }

type cannedGenerator struct {
	text string
}

func (g cannedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.text, nil
}

func newTestService() *PayrollService {
	records := &memProvider{records: map[string]*model.EmployeeRecord{
		"E1": {EmployeeID: "E1", Fields: map[string]interface{}{"Basic Salary": 600000.0}},
		"E2": {EmployeeID: "E2", Fields: map[string]interface{}{"HRA": 100000.0}},
	}}
	classifier := classify.New(downEmbedder{})
	composer := compose.New(cannedGenerator{text: "generated answer"})
	return NewPayrollService(records, classifier, composer, history.NewStore(history.DefaultRetention))
}

func TestChat_AppendsToHistory(t *testing.T) {
	svc := newTestService()

	result, err := svc.Chat(context.Background(), "E1", "tell me something")
	require.NoError(t, err)
	require.Equal(t, model.CategoryFallback, result.Category)
	require.NotEmpty(t, result.Response)
	require.Len(t, result.History, 1)
	require.Equal(t, "tell me something", result.History[0].Query)
	require.Equal(t, result.Response, result.History[0].Response)

	entries, err := svc.History(context.Background(), "E1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestChat_UnknownEmployee(t *testing.T) {
	svc := newTestService()
	_, err := svc.Chat(context.Background(), "nobody", "hello")
	require.True(t, appErr.IsNotFound(err))
}

func TestChat_EmptyInput(t *testing.T) {
	svc := newTestService()
	_, err := svc.Chat(context.Background(), "E1", "   ")
	require.ErrorIs(t, err, appErr.ErrInvalid)
	_, err = svc.Chat(context.Background(), "", "hello")
	require.ErrorIs(t, err, appErr.ErrInvalid)
}

func TestChat_MissingBasicSalary(t *testing.T) {
	svc := newTestService()
	_, err := svc.Chat(context.Background(), "E2", "hello")
	require.True(t, appErr.IsMissingField(err))
}

func TestChat_CancelledRequestLeavesNoHistory(t *testing.T) {
	svc := newTestService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Chat(ctx, "E1", "hello")
	require.ErrorIs(t, err, context.Canceled)

	entries, err := svc.History(context.Background(), "E1")
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestBreakdownAndDeductionTable(t *testing.T) {
	svc := newTestService()

	b, err := svc.Breakdown(context.Background(), "E1")
	require.NoError(t, err)
	require.Equal(t, 50000.00, b.MonthlyBasic())

	rows, err := svc.DeductionTable(context.Background(), "E1", payroll.PeriodYearly)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "₹72,000.00", rows[0].Amount)

	_, err = svc.DeductionTable(context.Background(), "nobody", payroll.PeriodMonthly)
	require.True(t, appErr.IsNotFound(err))
}

func TestHistory_UnknownEmployee(t *testing.T) {
	svc := newTestService()
	_, err := svc.History(context.Background(), "nobody")
	require.True(t, appErr.IsNotFound(err))
}

func TestChat_HistoryOrderAcrossQueries(t *testing.T) {
	svc := newTestService()
	for _, q := range []string{"first", "second", "third"} {
		_, err := svc.Chat(context.Background(), "E1", q)
		require.NoError(t, err)
	}
	entries, err := svc.History(context.Background(), "E1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, "first", entries[0].Query)
	require.Equal(t, "third", entries[2].Query)
	require.True(t, !entries[2].Timestamp.Before(entries[0].Timestamp))
}
