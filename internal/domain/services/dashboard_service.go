package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"roomease-http-service/internal/domain/models"
	"roomease-http-service/internal/infrastructure/config"
	"roomease-http-service/pkg/logger"
)

// 摘要缓存的过期时间
const summaryCacheTTL = 30 * time.Second

// DashboardSummary 仪表盘汇总数据
type DashboardSummary struct {
	TotalRooms     int64   `json:"total_rooms"`
	AvailableRooms int64   `json:"available_rooms"`
	OccupiedRooms  int64   `json:"occupied_rooms"`
	ReservedRooms  int64   `json:"reserved_rooms"`
	TotalTenants   int64   `json:"total_tenants"`
	PaidTenants    int64   `json:"paid_tenants"`
	RevenueMinor   int64   `json:"revenue_minor"` // 月收入，最小货币单位
	Revenue        float64 `json:"revenue"`       // 月收入，显示单位
}

// InterfaceDashboardService 定义仪表盘服务接口
type InterfaceDashboardService interface {
	GetSummary() (*DashboardSummary, error)
	GetRecentActivity(limit int) ([]models.Payment, error)
	ExportReport() ([]byte, error)
	InvalidateCache()
}

// DashboardService 提供仪表盘汇总和报表导出服务
type DashboardService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService // 可为nil，此时不做摘要缓存
}

// NewDashboardService 创建一个新的仪表盘服务
func NewDashboardService(db *gorm.DB, cfg *config.Config, redisService InterfaceRedisService) InterfaceDashboardService {
	return &DashboardService{
		DB:     db,
		Config: cfg,
		Redis:  redisService,
	}
}

// 1. GetSummary 计算仪表盘汇总数据，优先返回缓存
func (s *DashboardService) GetSummary() (*DashboardSummary, error) {
	if s.Redis != nil {
		var cached DashboardSummary
		if err := s.Redis.GetDashboardSummary(&cached); err == nil {
			return &cached, nil
		}
	}

	summary, err := s.computeSummary()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if err := s.Redis.CacheDashboardSummary(summary, summaryCacheTTL); err != nil {
			logger.Warning("缓存仪表盘摘要失败: %v", err)
		}
	}
	return summary, nil
}

// computeSummary 从数据库计算汇总数据。
// 房间按状态分组，旧数据没有status字段时按实际入住情况回退；
// 月收入为所有已支付租户的分摊租金之和。
func (s *DashboardService) computeSummary() (*DashboardSummary, error) {
	var rooms []models.Room
	if err := s.DB.Preload("Tenants").Find(&rooms).Error; err != nil {
		return nil, err
	}

	summary := &DashboardSummary{TotalRooms: int64(len(rooms))}

	for i := range rooms {
		room := &rooms[i]
		switch room.EffectiveStatus() {
		case models.RoomStatusOccupied:
			summary.OccupiedRooms++
		case models.RoomStatusReserved:
			summary.ReservedRooms++
		default:
			summary.AvailableRooms++
		}

		share := RentShare(room.Rent, len(room.Tenants))
		for _, t := range room.Tenants {
			summary.TotalTenants++
			if t.PaymentStatus == models.PaymentStatusPaid {
				summary.PaidTenants++
				summary.RevenueMinor += share
			}
		}
	}

	// 未分配房间的租户也计入总数，但租金为0，不贡献收入
	var unassigned int64
	if err := s.DB.Model(&models.Tenant{}).Where("room_id IS NULL").Count(&unassigned).Error; err != nil {
		return nil, err
	}
	summary.TotalTenants += unassigned
	var unassignedPaid int64
	if err := s.DB.Model(&models.Tenant{}).Where("room_id IS NULL AND payment_status = ?", models.PaymentStatusPaid).Count(&unassignedPaid).Error; err != nil {
		return nil, err
	}
	summary.PaidTenants += unassignedPaid

	summary.Revenue = ToDisplayUnits(summary.RevenueMinor)
	return summary, nil
}

// 2. GetRecentActivity 获取最近的收款记录
func (s *DashboardService) GetRecentActivity(limit int) ([]models.Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var payments []models.Payment
	if err := s.DB.Order("created_at DESC").Limit(limit).Find(&payments).Error; err != nil {
		return nil, err
	}

	if err := decoratePayments(s.DB, payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// 报表表头
var reportHeader = []string{
	"Room",
	"Status",
	"Rent",
	"Tenants",
	"Rent Per Tenant",
}

// 3. ExportReport 生成房间入住与租金分摊的Excel报表
func (s *DashboardService) ExportReport() ([]byte, error) {
	var rooms []models.Room
	if err := s.DB.Preload("Tenants").Order("name").Find(&rooms).Error; err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	sheetName := "Occupancy"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("创建工作表失败: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	// 表头样式
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	for col, header := range reportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
	}

	for i := range rooms {
		room := &rooms[i]
		room.Decorate()
		share := RentShare(room.Rent, len(room.Tenants))

		row := i + 2
		values := []interface{}{
			room.Name,
			room.EffectiveStatus(),
			ToDisplayUnits(room.Rent),
			strings.Join(room.TenantNames, ", "),
			ToDisplayUnits(share),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	out, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// 4. InvalidateCache 丢弃已缓存的摘要，写操作之后调用
func (s *DashboardService) InvalidateCache() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.InvalidateDashboardSummary(); err != nil {
		logger.Warning("失效仪表盘摘要缓存失败: %v", err)
	}
}
