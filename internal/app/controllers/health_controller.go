package controllers

import (
	"github.com/gin-gonic/gin"

	"roomease-http-service/internal/domain/services"
	"roomease-http-service/internal/domain/services/container"
	"roomease-http-service/internal/error/code"
	"roomease-http-service/internal/error/response"
)

// ErrorResponse 表示错误响应
type ErrorResponse struct {
	Code    int         `json:"code" example:"400"`
	Message string      `json:"message" example:"请求参数错误"`
	Data    interface{} `json:"data"`
}

// HealthCheckController 健康检查控制器
type HealthCheckController struct {
	Container *container.ServiceContainer
}

// NewHealthCheckController 创建健康检查控制器实例
func NewHealthCheckController(container *container.ServiceContainer) *HealthCheckController {
	return &HealthCheckController{Container: container}
}

// HandleHealthFunc 返回一个处理健康检查请求的Gin处理函数
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthCheckController(container)

		switch method {
		case "ping":
			controller.Ping(ctx)
		case "status":
			controller.Status(ctx)
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// Ping 健康检查端点
func (h *HealthCheckController) Ping(c *gin.Context) {
	response.Success(c, gin.H{
		"status":  "healthy",
		"message": "pong",
	})
}

// Status 返回数据库连接状态
func (h *HealthCheckController) Status(c *gin.Context) {
	dbStatus := "up"
	if db := h.Container.GetDB(); db != nil {
		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "down"
		}
	} else {
		dbStatus = "down"
	}

	cacheStatus := "disabled"
	if svc, ok := h.Container.GetService("redis").(services.InterfaceRedisService); ok && svc != nil {
		if svc.Ping() == nil {
			cacheStatus = "up"
		} else {
			cacheStatus = "down"
		}
	}

	response.Success(c, gin.H{
		"status":   "healthy",
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}
