package service

import (
	"context"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/AnuragRai017/paybot/internal/classify"
	"github.com/AnuragRai017/paybot/internal/compose"
	"github.com/AnuragRai017/paybot/internal/history"
	"github.com/AnuragRai017/paybot/internal/model"
	"github.com/AnuragRai017/paybot/internal/payroll"
	appErr "github.com/AnuragRai017/paybot/internal/pkg/errors"
	"github.com/AnuragRai017/paybot/internal/recordstore"
)

// PayrollService owns the record provider, the classification and
// composition pipeline and the session history. It is constructed once and
// shared by the request handlers; there is no package level state.
type PayrollService struct {
	records    recordstore.Provider
	classifier *classify.Classifier
	composer   *compose.Composer
	sessions   *history.Store
}

func NewPayrollService(records recordstore.Provider, classifier *classify.Classifier, composer *compose.Composer, sessions *history.Store) *PayrollService {
	return &PayrollService{
		records:    records,
		classifier: classifier,
		composer:   composer,
		sessions:   sessions,
	}
}

type ChatResult struct {
	EmployeeID string            `json:"employee_id"`
	Query      string            `json:"query"`
	Response   string            `json:"response"`
	Category   model.Category    `json:"category"`
	History    []model.ChatEntry `json:"history"`
}

// Chat answers one query for an employee: resolve record, compute figures,
// classify, compose, then append to the session history. The append only
// happens after a full response exists, so an abandoned request never
// leaves a partial entry behind.
func (s *PayrollService) Chat(ctx context.Context, employeeID, query string) (*ChatResult, error) {
	query = strings.TrimSpace(query)
	if employeeID == "" || query == "" {
		return nil, appErr.ErrInvalid
	}
	record, err := s.records.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	breakdown, err := payroll.ComputeBreakdown(record)
	if err != nil {
		return nil, err
	}
	result := s.classifier.Classify(ctx, query)
	logger := logutil.GetLogger(ctx).With(
		zap.String("employee_id", employeeID),
		zap.String("category", string(result.Category)),
		zap.Bool("embedded", result.Embedded),
	)
	response := s.composer.Compose(ctx, result.Category, breakdown, query)
	if err := ctx.Err(); err != nil {
		logger.Warn("request abandoned before append", zap.Error(err))
		return nil, err
	}
	s.sessions.Append(employeeID, query, response)
	logger.Info("chat answered")
	return &ChatResult{
		EmployeeID: employeeID,
		Query:      query,
		Response:   response,
		Category:   result.Category,
		History:    s.sessions.Recent(employeeID),
	}, nil
}

// Breakdown exposes the deterministic calculator directly.
func (s *PayrollService) Breakdown(ctx context.Context, employeeID string) (*payroll.Breakdown, error) {
	record, err := s.records.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return payroll.ComputeBreakdown(record)
}

func (s *PayrollService) DeductionTable(ctx context.Context, employeeID string, period payroll.Period) ([]payroll.TableRow, error) {
	breakdown, err := s.Breakdown(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return payroll.RenderTable(breakdown, period), nil
}

// History returns the retained exchanges for an employee. The identifier
// is validated against the record provider so unknown ids report not
// found instead of an empty history.
func (s *PayrollService) History(ctx context.Context, employeeID string) ([]model.ChatEntry, error) {
	if _, err := s.records.Get(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.sessions.Recent(employeeID), nil
}
