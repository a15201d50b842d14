package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"roomease-http-service/internal/domain/models"
	"roomease-http-service/internal/infrastructure/config"
)

// RoomRef 表示租户保存请求中引用的房间。
// 以RoomID为准；RoomName按精确匹配解析，匹配不到的引用按无房间处理。
type RoomRef struct {
	RoomID   *uint
	RoomName *string
}

// InterfaceTenantService 定义租户服务接口
type InterfaceTenantService interface {
	GetAllTenants(page, pageSize int, search, paymentStatus string) ([]models.Tenant, int64, error)
	GetTenantByID(id uint) (*models.Tenant, error)
	CreateTenant(tenant *models.Tenant, ref *RoomRef) (*models.Tenant, error)
	UpdateTenant(id uint, updates map[string]interface{}, ref *RoomRef) (*models.Tenant, error)
	DeleteTenant(id uint) error
}

// TenantService 提供租户相关的服务
type TenantService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewTenantService 创建一个新的租户服务
func NewTenantService(db *gorm.DB, cfg *config.Config) InterfaceTenantService {
	return &TenantService{
		DB:     db,
		Config: cfg,
	}
}

// resolveRoomRef 把房间引用解析为房间ID，解析不到时返回nil（按无房间处理）
func resolveRoomRef(tx *gorm.DB, ref RoomRef) (*uint, error) {
	var room models.Room
	if ref.RoomID != nil {
		if err := tx.First(&room, *ref.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return &room.ID, nil
	}
	if ref.RoomName != nil && *ref.RoomName != "" {
		if err := tx.Where("name = ?", *ref.RoomName).First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return &room.ID, nil
	}
	return nil, nil
}

// decorateTenants 批量填充租户的派生字段（room_name、rent）
func decorateTenants(db *gorm.DB, tenants []models.Tenant) error {
	roomIDSet := make(map[uint]bool)
	for i := range tenants {
		if tenants[i].RoomID != nil {
			roomIDSet[*tenants[i].RoomID] = true
		}
	}
	if len(roomIDSet) == 0 {
		return nil
	}

	roomIDs := make([]uint, 0, len(roomIDSet))
	for id := range roomIDSet {
		roomIDs = append(roomIDs, id)
	}

	var rooms []models.Room
	if err := db.Where("id IN ?", roomIDs).Find(&rooms).Error; err != nil {
		return err
	}
	roomByID := make(map[uint]*models.Room, len(rooms))
	for i := range rooms {
		roomByID[rooms[i].ID] = &rooms[i]
	}

	// 各房间当前入住人数
	type roomOccupancy struct {
		RoomID uint
		Cnt    int
	}
	var occ []roomOccupancy
	if err := db.Model(&models.Tenant{}).
		Select("room_id, COUNT(*) AS cnt").
		Where("room_id IN ?", roomIDs).
		Group("room_id").
		Scan(&occ).Error; err != nil {
		return err
	}
	countByRoom := make(map[uint]int, len(occ))
	for _, o := range occ {
		countByRoom[o.RoomID] = o.Cnt
	}

	for i := range tenants {
		t := &tenants[i]
		if t.RoomID == nil {
			continue
		}
		room, ok := roomByID[*t.RoomID]
		if !ok {
			continue
		}
		t.RoomName = room.Name
		t.Rent = TenantRent(t, room, countByRoom[room.ID])
	}
	return nil
}

// 1. GetAllTenants 获取所有租户，支持分页、搜索和支付状态过滤
func (s *TenantService) GetAllTenants(page, pageSize int, search, paymentStatus string) ([]models.Tenant, int64, error) {
	var tenants []models.Tenant
	var total int64

	query := s.DB.Model(&models.Tenant{})

	// 如果有搜索关键词，按姓名模糊匹配（不区分大小写）
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if models.IsValidPaymentStatus(paymentStatus) {
		query = query.Where("payment_status = ?", paymentStatus)
	}

	// 获取总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	offset := (page - 1) * pageSize
	if err := query.Limit(pageSize).Offset(offset).Find(&tenants).Error; err != nil {
		return nil, 0, err
	}

	if err := decorateTenants(s.DB, tenants); err != nil {
		return nil, 0, err
	}
	return tenants, total, nil
}

// 2. GetTenantByID 根据ID获取租户
func (s *TenantService) GetTenantByID(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.DB.First(&tenant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("租户不存在")
		}
		return nil, err
	}

	tenants := []models.Tenant{tenant}
	if err := decorateTenants(s.DB, tenants); err != nil {
		return nil, err
	}
	return &tenants[0], nil
}

// 3. CreateTenant 创建新租户，可同时分配房间
func (s *TenantService) CreateTenant(tenant *models.Tenant, ref *RoomRef) (*models.Tenant, error) {
	if strings.TrimSpace(tenant.Name) == "" {
		return nil, errors.New("租户姓名不能为空")
	}

	// 验证姓名唯一性（关联解析依赖姓名精确匹配，不允许重名）
	var count int64
	if err := s.DB.Model(&models.Tenant{}).Where("name = ?", tenant.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("租户姓名已存在")
	}

	if tenant.PaymentStatus == "" {
		tenant.PaymentStatus = models.PaymentStatusNotPaid
	}
	if !models.IsValidPaymentStatus(tenant.PaymentStatus) {
		return nil, errors.New("租户支付状态非法")
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if ref != nil {
			roomID, err := resolveRoomRef(tx, *ref)
			if err != nil {
				return err
			}
			tenant.RoomID = roomID
		}
		if err := tx.Create(tenant).Error; err != nil {
			return err
		}
		if tenant.RoomID != nil {
			if _, err := recomputeRoomStatus(tx, *tenant.RoomID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 重新获取服务端的最终状态
	return s.GetTenantByID(tenant.ID)
}

// 4. UpdateTenant 更新租户信息。
// ref不为nil时表示请求携带了房间引用；若房间发生变化，在同一事务内
// 迁移租户并重新推导新旧两个房间的状态。
func (s *TenantService) UpdateTenant(id uint, updates map[string]interface{}, ref *RoomRef) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.DB.First(&tenant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("租户不存在")
		}
		return nil, err
	}

	// 如果更新姓名，需要检查唯一性
	if name, ok := updates["name"].(string); ok && name != tenant.Name {
		var count int64
		if err := s.DB.Model(&models.Tenant{}).Where("name = ? AND id != ?", name, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("租户姓名已被其他租户使用")
		}
	}

	if status, ok := updates["payment_status"].(string); ok && !models.IsValidPaymentStatus(status) {
		return nil, errors.New("租户支付状态非法")
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&tenant).Updates(updates).Error; err != nil {
				return err
			}
		}

		if ref == nil {
			return nil
		}

		newRoomID, err := resolveRoomRef(tx, *ref)
		if err != nil {
			return err
		}
		oldRoomID := tenant.RoomID
		if equalRoomID(oldRoomID, newRoomID) {
			return nil
		}

		if err := tx.Model(&tenant).Update("room_id", newRoomID).Error; err != nil {
			return err
		}
		tenant.RoomID = newRoomID

		// 新旧房间都要重新推导状态
		if oldRoomID != nil {
			if _, err := recomputeRoomStatus(tx, *oldRoomID); err != nil {
				return err
			}
		}
		if newRoomID != nil {
			if _, err := recomputeRoomStatus(tx, *newRoomID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 重新获取更新后的租户信息
	return s.GetTenantByID(id)
}

// 5. DeleteTenant 删除租户，并重新推导其所在房间的状态
func (s *TenantService) DeleteTenant(id uint) error {
	var tenant models.Tenant
	if err := s.DB.First(&tenant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("租户不存在")
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&tenant).Error; err != nil {
			return err
		}
		if tenant.RoomID != nil {
			if _, err := recomputeRoomStatus(tx, *tenant.RoomID); err != nil {
				return err
			}
		}
		return nil
	})
}

// equalRoomID 比较两个可空房间ID是否指向同一房间
func equalRoomID(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
