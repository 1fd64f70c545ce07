package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AnuragRai017/paybot/internal/middleware"
)

type RouterDeps struct {
	Chat          *ChatHandler
	ChatRateLimit time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	chat := api.Group("")
	if deps.ChatRateLimit > 0 {
		chat.Use(middleware.RateLimit(deps.ChatRateLimit))
	}
	chat.POST("/chat", deps.Chat.Chat)

	api.GET("/chat/history/:employee_id", deps.Chat.History)
	api.GET("/employees/:id/breakdown", deps.Chat.Breakdown)
	api.GET("/employees/:id/deductions", deps.Chat.Deductions)
}
