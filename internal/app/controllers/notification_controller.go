package controllers

import (
	"io"

	"roomease-http-service/internal/domain/services"
	"roomease-http-service/internal/domain/services/container"
	"roomease-http-service/internal/error/code"
	"roomease-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceNotificationController 定义通知控制器接口
type InterfaceNotificationController interface {
	GetNotifications()
	StreamNotifications()
}

// NotificationController 处理通知相关的请求
type NotificationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewNotificationController 创建一个新的通知控制器
func NewNotificationController(ctx *gin.Context, container *container.ServiceContainer) *NotificationController {
	return &NotificationController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleNotificationFunc 返回一个处理通知请求的Gin处理函数
func HandleNotificationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewNotificationController(ctx, container)

		switch method {
		case "getNotifications":
			controller.GetNotifications()
		case "streamNotifications":
			controller.StreamNotifications()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetNotifications 获取当前未过期的通知
// @Summary 获取活跃通知
// @Description 获取当前仍在展示期内的通知列表
// @Tags Notification
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /notifications [get]
func (c *NotificationController) GetNotifications() {
	// 获取通知服务
	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	response.Success(c.Ctx, notificationService.Active())
}

// 2. StreamNotifications 以SSE方式推送新通知
// @Summary 订阅通知流
// @Description 以Server-Sent Events方式实时推送新产生的通知
// @Tags Notification
// @Produce text/event-stream
// @Success 200 {string} string
// @Router /notifications/stream [get]
func (c *NotificationController) StreamNotifications() {
	// 获取通知服务
	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	ch, cancel := notificationService.Subscribe()
	defer cancel()

	c.Ctx.Writer.Header().Set("Cache-Control", "no-cache")
	c.Ctx.Writer.Header().Set("Connection", "keep-alive")

	// 客户端断开或通知服务关闭时结束推送
	c.Ctx.Stream(func(w io.Writer) bool {
		select {
		case n, ok := <-ch:
			if !ok {
				return false
			}
			c.Ctx.SSEvent("notification", n)
			return true
		case <-c.Ctx.Request.Context().Done():
			return false
		}
	})
}
