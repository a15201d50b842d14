package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"roomease-http-service/internal/domain/services"
	"roomease-http-service/internal/domain/services/container"
	"roomease-http-service/internal/error/code"
	"roomease-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceDashboardController 定义仪表盘控制器接口
type InterfaceDashboardController interface {
	GetSummary()
	GetRecentActivity()
	ExportReport()
}

// DashboardController 处理仪表盘相关的请求
type DashboardController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDashboardController 创建一个新的仪表盘控制器
func NewDashboardController(ctx *gin.Context, container *container.ServiceContainer) *DashboardController {
	return &DashboardController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleDashboardFunc 返回一个处理仪表盘请求的Gin处理函数
func HandleDashboardFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDashboardController(ctx, container)

		switch method {
		case "getSummary":
			controller.GetSummary()
		case "getRecentActivity":
			controller.GetRecentActivity()
		case "exportReport":
			controller.ExportReport()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetSummary 获取仪表盘汇总数据
// @Summary 获取仪表盘汇总
// @Description 获取房间、租户、收入的汇总统计
// @Tags Dashboard
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /dashboard/summary [get]
func (c *DashboardController) GetSummary() {
	// 获取仪表盘服务
	dashboardService := c.Container.GetService("dashboard").(services.InterfaceDashboardService)
	summary, err := dashboardService.GetSummary()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取汇总数据失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, summary)
}

// 2. GetRecentActivity 获取最近的支付活动
// @Summary 获取最近活动
// @Description 按时间倒序获取最近的支付记录
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param limit query int false "返回条数，默认为10，最大50"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /dashboard/activity [get]
func (c *DashboardController) GetRecentActivity() {
	limit, _ := strconv.Atoi(c.Ctx.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	// 获取仪表盘服务
	dashboardService := c.Container.GetService("dashboard").(services.InterfaceDashboardService)
	payments, err := dashboardService.GetRecentActivity(limit)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取最近活动失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, payments)
}

// 3. ExportReport 导出入住报表
// @Summary 导出入住报表
// @Description 导出包含房间、状态、租金和租户分摊的Excel报表
// @Tags Dashboard
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 500 {object} ErrorResponse
// @Router /dashboard/export [get]
func (c *DashboardController) ExportReport() {
	// 获取仪表盘服务
	dashboardService := c.Container.GetService("dashboard").(services.InterfaceDashboardService)
	data, err := dashboardService.ExportReport()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "导出报表失败: "+err.Error(), nil)
		return
	}

	filename := fmt.Sprintf("occupancy_report_%s.xlsx", time.Now().Format("20060102"))
	c.Ctx.Header("Content-Disposition", "attachment; filename="+filename)
	c.Ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
