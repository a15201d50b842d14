package controllers

import (
	"roomease-http-service/internal/domain/services"
	"roomease-http-service/internal/domain/services/container"
	"roomease-http-service/internal/error/code"
	"roomease-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// ReconcileController 处理一致性对账请求
type ReconcileController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewReconcileController 创建一个新的对账控制器
func NewReconcileController(ctx *gin.Context, container *container.ServiceContainer) *ReconcileController {
	return &ReconcileController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleReconcileFunc 返回一个处理对账请求的Gin处理函数
func HandleReconcileFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewReconcileController(ctx, container)

		switch method {
		case "reconcileAll":
			controller.ReconcileAll()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// ReconcileAll 对全部房间执行一次对账
// @Summary 执行一致性对账
// @Description 按实际入住人数修正所有房间的状态，返回修正的房间数。重复调用是幂等的
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /reconcile [post]
func (c *ReconcileController) ReconcileAll() {
	// 获取对账服务
	reconcileService := c.Container.GetService("reconcile").(services.InterfaceReconcileService)
	repaired, err := reconcileService.ReconcileAll()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "对账失败: "+err.Error(), nil)
		return
	}

	// 对账发生修正时使仪表盘缓存失效
	if repaired > 0 {
		if svc, ok := c.Container.GetService("dashboard").(services.InterfaceDashboardService); ok && svc != nil {
			svc.InvalidateCache()
		}
	}

	response.Success(c.Ctx, gin.H{
		"repaired": repaired,
	})
}
