package controllers

import (
	"net/http"
	"strconv"

	"roomease-http-service/internal/domain/models"
	"roomease-http-service/internal/domain/services"
	"roomease-http-service/internal/domain/services/container"
	"roomease-http-service/internal/error/code"
	"roomease-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceTenantController 定义租户控制器接口
type InterfaceTenantController interface {
	GetTenants()
	GetTenant()
	CreateTenant()
	UpdateTenant()
	DeleteTenant()
}

// TenantController 处理租户相关的请求
type TenantController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewTenantController 创建一个新的租户控制器
func NewTenantController(ctx *gin.Context, container *container.ServiceContainer) *TenantController {
	return &TenantController{
		Ctx:       ctx,
		Container: container,
	}
}

// TenantRequest 表示租户请求。
// room_id / room_name 用于指定租户入住的房间：PATCH下两个字段都缺省时
// 不改动房间关联，显式传room_name=""则将租户置为未分配；PUT为整体替换，
// 缺省等同于未分配。
type TenantRequest struct {
	Name          string  `json:"name" example:"Alice"`
	PaymentStatus string  `json:"payment_status" example:"not_paid"` // paid, not_paid
	RoomID        *uint   `json:"room_id"`
	RoomName      *string `json:"room_name"`
}

// roomRef 把请求中的房间引用转换为服务层的房间引用。
// 解除分配通过传room_name=""表达。
func (r *TenantRequest) roomRef() *services.RoomRef {
	if r.RoomID == nil && r.RoomName == nil {
		return nil
	}
	return &services.RoomRef{
		RoomID:   r.RoomID,
		RoomName: r.RoomName,
	}
}

// HandleTenantFunc 返回一个处理租户请求的Gin处理函数
func HandleTenantFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewTenantController(ctx, container)

		switch method {
		case "getTenants":
			controller.GetTenants()
		case "getTenant":
			controller.GetTenant()
		case "createTenant":
			controller.CreateTenant()
		case "updateTenant":
			controller.UpdateTenant()
		case "deleteTenant":
			controller.DeleteTenant()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// notify 发布操作结果通知
func (c *TenantController) notify(title, description, notifyType string) {
	if svc, ok := c.Container.GetService("notification").(services.InterfaceNotificationService); ok && svc != nil {
		svc.Publish(title, description, notifyType)
	}
}

// invalidateDashboard 写操作后使仪表盘缓存失效
func (c *TenantController) invalidateDashboard() {
	if svc, ok := c.Container.GetService("dashboard").(services.InterfaceDashboardService); ok && svc != nil {
		svc.InvalidateCache()
	}
}

// 1. GetTenants 获取所有租户列表
// @Summary 获取所有租户
// @Description 获取系统中所有租户的列表，支持按姓名搜索和支付状态过滤
// @Tags Tenant
// @Accept json
// @Produce json
// @Param page query int false "页码，默认为1"
// @Param page_size query int false "每页条数，默认为10"
// @Param search query string false "按姓名搜索"
// @Param payment_status query string false "支付状态过滤：paid, not_paid"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /tenants [get]
func (c *TenantController) GetTenants() {
	// 获取分页参数
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	search := c.Ctx.Query("search")
	paymentStatus := c.Ctx.Query("payment_status")
	if paymentStatus != "" && !models.IsValidPaymentStatus(paymentStatus) {
		response.ParamError(c.Ctx, "无效的支付状态")
		return
	}

	// 获取租户服务
	tenantService := c.Container.GetService("tenant").(services.InterfaceTenantService)
	tenants, total, err := tenantService.GetAllTenants(page, pageSize, search, paymentStatus)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取租户列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        tenants,
	})
}

// 2. GetTenant 获取单个租户详情
// @Summary 获取租户详情
// @Description 根据ID获取租户详细信息，包含所在房间和分摊租金
// @Tags Tenant
// @Accept json
// @Produce json
// @Param id path int true "租户ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /tenants/{id} [get]
func (c *TenantController) GetTenant() {
	id := c.Ctx.Param("id")
	tenantID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的租户ID")
		return
	}

	// 获取租户服务
	tenantService := c.Container.GetService("tenant").(services.InterfaceTenantService)
	tenant, err := tenantService.GetTenantByID(uint(tenantID))
	if err != nil {
		response.NotFound(c.Ctx, "租户不存在: "+err.Error())
		return
	}

	response.Success(c.Ctx, tenant)
}

// 3. CreateTenant 创建新租户
// @Summary 创建租户
// @Description 创建一个新的租户，可同时分配房间
// @Tags Tenant
// @Accept json
// @Produce json
// @Param tenant body TenantRequest true "租户信息"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tenants [post]
func (c *TenantController) CreateTenant() {
	var req TenantRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	// 创建租户对象
	tenant := &models.Tenant{
		Name:          req.Name,
		PaymentStatus: req.PaymentStatus,
	}

	// 获取租户服务
	tenantService := c.Container.GetService("tenant").(services.InterfaceTenantService)
	created, err := tenantService.CreateTenant(tenant, req.roomRef())
	if err != nil {
		c.notify("Error", "创建租户失败: "+err.Error(), services.NotificationError)
		response.FailWithMessage(c.Ctx, code.ErrTenantAlreadyExist, "创建租户失败: "+err.Error(), nil)
		return
	}

	c.notify("Success", "租户 "+created.Name+" 创建成功", services.NotificationSuccess)
	c.invalidateDashboard()
	response.Created(c.Ctx, created)
}

// 4. UpdateTenant 更新租户信息
// @Summary 更新租户
// @Description 更新租户信息；房间发生变化时在同一事务内迁移租户并修正新旧房间状态
// @Tags Tenant
// @Accept json
// @Produce json
// @Param id path int true "租户ID"
// @Param tenant body TenantRequest true "租户信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tenants/{id} [patch]
func (c *TenantController) UpdateTenant() {
	id := c.Ctx.Param("id")
	tenantID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的租户ID")
		return
	}

	var req TenantRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	// PUT为整体替换：缺省支付状态回到not_paid，缺省房间引用视为解除分配
	replace := c.Ctx.Request.Method == http.MethodPut

	// 创建更新映射
	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	} else if replace {
		response.ParamError(c.Ctx, "租户姓名不能为空")
		return
	}
	if req.PaymentStatus != "" {
		updates["payment_status"] = req.PaymentStatus
	} else if replace {
		updates["payment_status"] = models.PaymentStatusNotPaid
	}

	ref := req.roomRef()
	if replace && ref == nil {
		ref = &services.RoomRef{}
	}

	// 获取租户服务
	tenantService := c.Container.GetService("tenant").(services.InterfaceTenantService)
	tenant, err := tenantService.UpdateTenant(uint(tenantID), updates, ref)
	if err != nil {
		c.notify("Error", "更新租户失败: "+err.Error(), services.NotificationError)
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新租户失败: "+err.Error(), nil)
		return
	}

	c.notify("Success", "租户 "+tenant.Name+" 更新成功", services.NotificationSuccess)
	c.invalidateDashboard()
	response.Success(c.Ctx, tenant)
}

// 5. DeleteTenant 删除租户
// @Summary 删除租户
// @Description 删除指定的租户，并修正其所在房间的状态
// @Tags Tenant
// @Accept json
// @Produce json
// @Param id path int true "租户ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tenants/{id} [delete]
func (c *TenantController) DeleteTenant() {
	id := c.Ctx.Param("id")
	tenantID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的租户ID")
		return
	}

	// 获取租户服务
	tenantService := c.Container.GetService("tenant").(services.InterfaceTenantService)
	if err := tenantService.DeleteTenant(uint(tenantID)); err != nil {
		c.notify("Error", "删除租户失败: "+err.Error(), services.NotificationError)
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除租户失败: "+err.Error(), nil)
		return
	}

	c.notify("Success", "租户删除成功", services.NotificationSuccess)
	c.invalidateDashboard()
	response.Success(c.Ctx, nil)
}
