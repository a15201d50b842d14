package controllers

import (
	"strconv"

	"roomease-http-service/internal/domain/services"
	"roomease-http-service/internal/domain/services/container"
	"roomease-http-service/internal/error/code"
	"roomease-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfacePaymentController 定义支付控制器接口
type InterfacePaymentController interface {
	GetPayments()
	RecordPayment()
}

// PaymentController 处理支付相关的请求
type PaymentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPaymentController 创建一个新的支付控制器
func NewPaymentController(ctx *gin.Context, container *container.ServiceContainer) *PaymentController {
	return &PaymentController{
		Ctx:       ctx,
		Container: container,
	}
}

// PaymentRequest 表示记录支付的请求
type PaymentRequest struct {
	TenantID uint  `json:"tenant_id" binding:"required" example:"1"`
	Amount   int64 `json:"amount" binding:"required" example:"60000"` // 金额（分）
}

// HandlePaymentFunc 返回一个处理支付请求的Gin处理函数
func HandlePaymentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPaymentController(ctx, container)

		switch method {
		case "getPayments":
			controller.GetPayments()
		case "recordPayment":
			controller.RecordPayment()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// notify 发布操作结果通知
func (c *PaymentController) notify(title, description, notifyType string) {
	if svc, ok := c.Container.GetService("notification").(services.InterfaceNotificationService); ok && svc != nil {
		svc.Publish(title, description, notifyType)
	}
}

// invalidateDashboard 写操作后使仪表盘缓存失效
func (c *PaymentController) invalidateDashboard() {
	if svc, ok := c.Container.GetService("dashboard").(services.InterfaceDashboardService); ok && svc != nil {
		svc.InvalidateCache()
	}
}

// 1. GetPayments 获取支付记录列表
// @Summary 获取支付记录
// @Description 按时间倒序获取支付记录，支持分页
// @Tags Payment
// @Accept json
// @Produce json
// @Param page query int false "页码，默认为1"
// @Param page_size query int false "每页条数，默认为10"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /payments [get]
func (c *PaymentController) GetPayments() {
	// 获取分页参数
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	// 获取支付服务
	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	payments, total, err := paymentService.GetAllPayments(page, pageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取支付记录失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        payments,
	})
}

// 2. RecordPayment 记录一笔支付
// @Summary 记录支付
// @Description 为指定租户记录一笔支付，并将其标记为已支付
// @Tags Payment
// @Accept json
// @Produce json
// @Param payment body PaymentRequest true "支付信息"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /payments [post]
func (c *PaymentController) RecordPayment() {
	var req PaymentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	// 获取支付服务
	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	payment, err := paymentService.RecordPayment(req.TenantID, req.Amount)
	if err != nil {
		c.notify("Error", "记录支付失败: "+err.Error(), services.NotificationError)
		response.FailWithMessage(c.Ctx, code.ErrPaymentInvalid, "记录支付失败: "+err.Error(), nil)
		return
	}

	c.notify("Success", "支付记录成功", services.NotificationSuccess)
	c.invalidateDashboard()
	response.Created(c.Ctx, payment)
}
