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

// InterfaceRoomController 定义房间控制器接口
type InterfaceRoomController interface {
	GetRooms()
	GetRoom()
	CreateRoom()
	UpdateRoom()
	DeleteRoom()
	GetRoomTenants()
}

// RoomController 处理房间相关的请求
type RoomController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewRoomController 创建一个新的房间控制器
func NewRoomController(ctx *gin.Context, container *container.ServiceContainer) *RoomController {
	return &RoomController{
		Ctx:       ctx,
		Container: container,
	}
}

// RoomRequest 表示房间请求。
// tenant_ids / tenant_names 用于在保存房间的同时调整租户集合：
// PATCH下两个字段都缺省时不改动租户关联，显式传空列表则清空房间内的
// 租户；PUT为整体替换，缺省等同于空列表。
type RoomRequest struct {
	Name        string    `json:"name" example:"Room 101"`
	Rent        *int64    `json:"rent" example:"120000"` // 月租金（分）
	Status      string    `json:"status" example:"available"` // available, occupied, reserved
	TenantIDs   *[]uint   `json:"tenant_ids"`
	TenantNames *[]string `json:"tenant_names"`
}

// assignment 把请求中的租户引用转换为服务层的分配请求
func (r *RoomRequest) assignment() *services.AssignmentRequest {
	if r.TenantIDs == nil && r.TenantNames == nil {
		return nil
	}
	assign := &services.AssignmentRequest{}
	if r.TenantIDs != nil {
		assign.TenantIDs = *r.TenantIDs
	}
	if r.TenantNames != nil {
		assign.TenantNames = *r.TenantNames
	}
	return assign
}

// HandleRoomFunc 返回一个处理房间请求的Gin处理函数
func HandleRoomFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewRoomController(ctx, container)

		switch method {
		case "getRooms":
			controller.GetRooms()
		case "getRoom":
			controller.GetRoom()
		case "createRoom":
			controller.CreateRoom()
		case "updateRoom":
			controller.UpdateRoom()
		case "deleteRoom":
			controller.DeleteRoom()
		case "getRoomTenants":
			controller.GetRoomTenants()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// notify 发布操作结果通知
func (c *RoomController) notify(title, description, notifyType string) {
	if svc, ok := c.Container.GetService("notification").(services.InterfaceNotificationService); ok && svc != nil {
		svc.Publish(title, description, notifyType)
	}
}

// invalidateDashboard 写操作后使仪表盘缓存失效
func (c *RoomController) invalidateDashboard() {
	if svc, ok := c.Container.GetService("dashboard").(services.InterfaceDashboardService); ok && svc != nil {
		svc.InvalidateCache()
	}
}

// 1. GetRooms 获取所有房间列表
// @Summary 获取所有房间
// @Description 获取系统中所有房间的列表，支持按状态过滤和名称搜索
// @Tags Room
// @Accept json
// @Produce json
// @Param page query int false "页码，默认为1"
// @Param page_size query int false "每页条数，默认为10"
// @Param status query string false "状态过滤：available, occupied, reserved"
// @Param search query string false "按名称搜索"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /rooms [get]
func (c *RoomController) GetRooms() {
	// 获取分页参数
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	status := c.Ctx.Query("status")
	search := c.Ctx.Query("search")
	// "all"等同于不过滤
	if status == "all" {
		status = ""
	}
	if status != "" && !models.IsValidRoomStatus(status) {
		response.ParamError(c.Ctx, "无效的房间状态")
		return
	}

	// 获取房间服务
	roomService := c.Container.GetService("room").(services.InterfaceRoomService)
	rooms, total, err := roomService.GetAllRooms(page, pageSize, status, search)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取房间列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        rooms,
	})
}

// 2. GetRoom 获取单个房间详情
// @Summary 获取房间详情
// @Description 根据ID获取房间详细信息，包含租户及其分摊租金
// @Tags Room
// @Accept json
// @Produce json
// @Param id path int true "房间ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /rooms/{id} [get]
func (c *RoomController) GetRoom() {
	id := c.Ctx.Param("id")
	roomID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的房间ID")
		return
	}

	// 获取房间服务
	roomService := c.Container.GetService("room").(services.InterfaceRoomService)
	room, err := roomService.GetRoomByID(uint(roomID))
	if err != nil {
		response.NotFound(c.Ctx, "房间不存在: "+err.Error())
		return
	}

	response.Success(c.Ctx, room)
}

// 3. CreateRoom 创建新房间
// @Summary 创建房间
// @Description 创建一个新的房间，可同时指定入住的租户
// @Tags Room
// @Accept json
// @Produce json
// @Param room body RoomRequest true "房间信息"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /rooms [post]
func (c *RoomController) CreateRoom() {
	var req RoomRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	// 创建房间对象
	room := &models.Room{
		Name:   req.Name,
		Status: req.Status,
	}
	if req.Rent != nil {
		room.Rent = *req.Rent
	}

	// 获取房间服务
	roomService := c.Container.GetService("room").(services.InterfaceRoomService)
	created, err := roomService.CreateRoom(room, req.assignment())
	if err != nil {
		c.notify("Error", "创建房间失败: "+err.Error(), services.NotificationError)
		response.FailWithMessage(c.Ctx, code.ErrRoomAlreadyExist, "创建房间失败: "+err.Error(), nil)
		return
	}

	c.notify("Success", "房间 "+created.Name+" 创建成功", services.NotificationSuccess)
	c.invalidateDashboard()
	response.Created(c.Ctx, created)
}

// 4. UpdateRoom 更新房间信息
// @Summary 更新房间
// @Description 更新房间信息，并在同一事务内同步租户关联与房间状态
// @Tags Room
// @Accept json
// @Produce json
// @Param id path int true "房间ID"
// @Param room body RoomRequest true "房间信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /rooms/{id} [patch]
func (c *RoomController) UpdateRoom() {
	id := c.Ctx.Param("id")
	roomID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的房间ID")
		return
	}

	var req RoomRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	// PUT为整体替换：缺省字段回到零值，缺省租户集合视为清空
	replace := c.Ctx.Request.Method == http.MethodPut

	// 创建更新映射
	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	} else if replace {
		response.ParamError(c.Ctx, "房间名称不能为空")
		return
	}
	if req.Rent != nil {
		updates["rent"] = *req.Rent
	} else if replace {
		updates["rent"] = int64(0)
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	assign := req.assignment()
	if replace && assign == nil {
		assign = &services.AssignmentRequest{}
	}

	// 获取房间服务
	roomService := c.Container.GetService("room").(services.InterfaceRoomService)
	room, err := roomService.UpdateRoom(uint(roomID), updates, assign)
	if err != nil {
		c.notify("Error", "更新房间失败: "+err.Error(), services.NotificationError)
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新房间失败: "+err.Error(), nil)
		return
	}

	c.notify("Success", "房间 "+room.Name+" 更新成功", services.NotificationSuccess)
	c.invalidateDashboard()
	response.Success(c.Ctx, room)
}

// 5. DeleteRoom 删除房间
// @Summary 删除房间
// @Description 删除指定的房间，房间内租户转为未分配状态
// @Tags Room
// @Accept json
// @Produce json
// @Param id path int true "房间ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /rooms/{id} [delete]
func (c *RoomController) DeleteRoom() {
	id := c.Ctx.Param("id")
	roomID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的房间ID")
		return
	}

	// 获取房间服务
	roomService := c.Container.GetService("room").(services.InterfaceRoomService)
	if err := roomService.DeleteRoom(uint(roomID)); err != nil {
		c.notify("Error", "删除房间失败: "+err.Error(), services.NotificationError)
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除房间失败: "+err.Error(), nil)
		return
	}

	c.notify("Success", "房间删除成功", services.NotificationSuccess)
	c.invalidateDashboard()
	response.Success(c.Ctx, nil)
}

// 6. GetRoomTenants 获取房间内的租户
// @Summary 获取房间内的租户
// @Description 获取指定房间内的所有租户，包含每人分摊的租金
// @Tags Room
// @Accept json
// @Produce json
// @Param id path int true "房间ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /rooms/{id}/tenants [get]
func (c *RoomController) GetRoomTenants() {
	id := c.Ctx.Param("id")
	roomID, err := strconv.Atoi(id)
	if err != nil {
		response.ParamError(c.Ctx, "无效的房间ID")
		return
	}

	// 获取房间服务
	roomService := c.Container.GetService("room").(services.InterfaceRoomService)
	tenants, err := roomService.GetRoomTenants(uint(roomID))
	if err != nil {
		response.NotFound(c.Ctx, "房间不存在: "+err.Error())
		return
	}

	response.Success(c.Ctx, tenants)
}
