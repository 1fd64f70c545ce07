package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/AnuragRai017/paybot/internal/payroll"
	"github.com/AnuragRai017/paybot/internal/pkg/errcode"
	"github.com/AnuragRai017/paybot/internal/pkg/response"
	"github.com/AnuragRai017/paybot/internal/service"
)

type ChatHandler struct {
	svc *service.PayrollService
}

func NewChatHandler(svc *service.PayrollService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type chatRequest struct {
	EmployeeID string `json:"employee_id"`
	Query      string `json:"query"`
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if req.EmployeeID == "" || req.Query == "" {
		response.Error(c, errcode.ErrInvalid, "employee_id and query are required")
		return
	}
	result, err := h.svc.Chat(c.Request.Context(), req.EmployeeID, req.Query)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *ChatHandler) History(c *gin.Context) {
	employeeID := c.Param("employee_id")
	entries, err := h.svc.History(c.Request.Context(), employeeID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"employee_id": employeeID, "history": entries})
}

func (h *ChatHandler) Breakdown(c *gin.Context) {
	employeeID := c.Param("id")
	breakdown, err := h.svc.Breakdown(c.Request.Context(), employeeID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"employee_id": employeeID,
		"yearly":      breakdown.Yearly,
		"monthly":     breakdown.Monthly,
	})
}

func (h *ChatHandler) Deductions(c *gin.Context) {
	employeeID := c.Param("id")
	period := payroll.PeriodMonthly
	switch c.Query("period") {
	case "", string(payroll.PeriodMonthly):
	case string(payroll.PeriodYearly):
		period = payroll.PeriodYearly
	default:
		response.Error(c, errcode.ErrInvalid, "period must be monthly or yearly")
		return
	}
	rows, err := h.svc.DeductionTable(c.Request.Context(), employeeID, period)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"employee_id": employeeID,
		"period":      period,
		"rows":        rows,
	})
}
