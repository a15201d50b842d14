package services

import (
	"errors"

	"gorm.io/gorm"

	"roomease-http-service/internal/domain/models"
	"roomease-http-service/internal/infrastructure/config"
)

// InterfacePaymentService 定义收款服务接口
type InterfacePaymentService interface {
	GetAllPayments(page, pageSize int) ([]models.Payment, int64, error)
	RecordPayment(tenantID uint, amount int64) (*models.Payment, error)
}

// PaymentService 提供租金收款相关的服务
type PaymentService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewPaymentService 创建一个新的收款服务
func NewPaymentService(db *gorm.DB, cfg *config.Config) InterfacePaymentService {
	return &PaymentService{
		DB:     db,
		Config: cfg,
	}
}

// decoratePayments 批量填充收款记录的派生字段（tenant_name、room_name）
func decoratePayments(db *gorm.DB, payments []models.Payment) error {
	tenantIDSet := make(map[uint]bool)
	roomIDSet := make(map[uint]bool)
	for i := range payments {
		tenantIDSet[payments[i].TenantID] = true
		if payments[i].RoomID != nil {
			roomIDSet[*payments[i].RoomID] = true
		}
	}
	if len(tenantIDSet) == 0 {
		return nil
	}

	tenantIDs := make([]uint, 0, len(tenantIDSet))
	for id := range tenantIDSet {
		tenantIDs = append(tenantIDs, id)
	}
	var tenants []models.Tenant
	if err := db.Where("id IN ?", tenantIDs).Find(&tenants).Error; err != nil {
		return err
	}
	tenantNameByID := make(map[uint]string, len(tenants))
	for _, t := range tenants {
		tenantNameByID[t.ID] = t.Name
	}

	roomNameByID := make(map[uint]string)
	if len(roomIDSet) > 0 {
		roomIDs := make([]uint, 0, len(roomIDSet))
		for id := range roomIDSet {
			roomIDs = append(roomIDs, id)
		}
		var rooms []models.Room
		if err := db.Where("id IN ?", roomIDs).Find(&rooms).Error; err != nil {
			return err
		}
		for _, r := range rooms {
			roomNameByID[r.ID] = r.Name
		}
	}

	for i := range payments {
		p := &payments[i]
		p.TenantName = tenantNameByID[p.TenantID]
		if p.RoomID != nil {
			p.RoomName = roomNameByID[*p.RoomID]
		}
	}
	return nil
}

// 1. GetAllPayments 获取收款记录，按时间倒序，支持分页
func (s *PaymentService) GetAllPayments(page, pageSize int) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64

	if err := s.DB.Model(&models.Payment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := s.DB.Order("created_at DESC").Limit(pageSize).Offset(offset).Find(&payments).Error; err != nil {
		return nil, 0, err
	}

	if err := decoratePayments(s.DB, payments); err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// 2. RecordPayment 记录一笔租金收款，并把租户标记为已支付
func (s *PaymentService) RecordPayment(tenantID uint, amount int64) (*models.Payment, error) {
	if amount <= 0 {
		return nil, errors.New("收款金额必须为正数")
	}

	var tenant models.Tenant
	if err := s.DB.First(&tenant, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("租户不存在")
		}
		return nil, err
	}

	payment := &models.Payment{
		TenantID: tenant.ID,
		RoomID:   tenant.RoomID,
		Amount:   amount,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return tx.Model(&tenant).Update("payment_status", models.PaymentStatusPaid).Error
	})
	if err != nil {
		return nil, err
	}

	payments := []models.Payment{*payment}
	if err := decoratePayments(s.DB, payments); err != nil {
		return nil, err
	}
	return &payments[0], nil
}
