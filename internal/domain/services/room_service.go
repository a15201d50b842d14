package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"roomease-http-service/internal/domain/models"
	"roomease-http-service/internal/infrastructure/config"
)

// InterfaceRoomService 定义房间服务接口
type InterfaceRoomService interface {
	GetAllRooms(page, pageSize int, status, search string) ([]models.Room, int64, error)
	GetRoomByID(id uint) (*models.Room, error)
	CreateRoom(room *models.Room, assign *AssignmentRequest) (*models.Room, error)
	UpdateRoom(id uint, updates map[string]interface{}, assign *AssignmentRequest) (*models.Room, error)
	DeleteRoom(id uint) error
	GetRoomTenants(roomID uint) ([]models.Tenant, error)
}

// RoomService 提供房间相关的服务
type RoomService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewRoomService 创建一个新的房间服务
func NewRoomService(db *gorm.DB, cfg *config.Config) InterfaceRoomService {
	return &RoomService{
		DB:     db,
		Config: cfg,
	}
}

// decorateRoom 填充房间及其租户的派生字段
func decorateRoom(room *models.Room) {
	room.Decorate()
	for i := range room.Tenants {
		room.Tenants[i].RoomName = room.Name
		room.Tenants[i].Rent = RentShare(room.Rent, len(room.Tenants))
	}
}

// 1. GetAllRooms 获取所有房间列表，支持分页、状态过滤和搜索
func (s *RoomService) GetAllRooms(page, pageSize int, status, search string) ([]models.Room, int64, error) {
	var rooms []models.Room
	var total int64

	query := s.DB.Model(&models.Room{})

	// 状态过滤。旧数据可能没有status字段，按实际入住情况回退判断
	switch status {
	case models.RoomStatusAvailable:
		query = query.Where("status = ? OR (status = '' AND NOT EXISTS (SELECT 1 FROM tenants WHERE tenants.room_id = rooms.id))", models.RoomStatusAvailable)
	case models.RoomStatusOccupied:
		query = query.Where("status = ? OR (status = '' AND EXISTS (SELECT 1 FROM tenants WHERE tenants.room_id = rooms.id))", models.RoomStatusOccupied)
	case models.RoomStatusReserved:
		query = query.Where("status = ?", models.RoomStatusReserved)
	}

	// 如果有搜索关键词，按名称模糊匹配（不区分大小写）
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	// 获取总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	offset := (page - 1) * pageSize
	if err := query.Preload("Tenants").Limit(pageSize).Offset(offset).Find(&rooms).Error; err != nil {
		return nil, 0, err
	}

	for i := range rooms {
		decorateRoom(&rooms[i])
	}
	return rooms, total, nil
}

// 2. GetRoomByID 根据ID获取房间
func (s *RoomService) GetRoomByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.Preload("Tenants").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("房间不存在")
		}
		return nil, err
	}
	decorateRoom(&room)
	return &room, nil
}

// 3. CreateRoom 创建新房间，可同时预分配租户
func (s *RoomService) CreateRoom(room *models.Room, assign *AssignmentRequest) (*models.Room, error) {
	if strings.TrimSpace(room.Name) == "" {
		return nil, errors.New("房间名称不能为空")
	}
	if room.Rent < 0 {
		return nil, errors.New("房间租金不能为负数")
	}

	// 验证房间名称唯一性（关联解析依赖名称精确匹配，不允许重名）
	var count int64
	if err := s.DB.Model(&models.Room{}).Where("name = ?", room.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("房间名称已存在")
	}

	if room.Status == "" {
		room.Status = models.RoomStatusAvailable
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(room).Error; err != nil {
			return err
		}
		if assign == nil {
			return nil
		}
		want, err := resolveAssignment(tx, *assign)
		if err != nil {
			return err
		}
		return applyRoomAssignment(tx, room, want, room.Status)
	})
	if err != nil {
		return nil, err
	}

	// 重新获取服务端的最终状态
	return s.GetRoomByID(room.ID)
}

// 4. UpdateRoom 更新房间信息。
// assign不为nil时，在同一事务内将房间的租户集合同步为请求集合：
// 新增的租户指向本房间，移除的租户清空房间引用，并重新推导房间状态。
func (s *RoomService) UpdateRoom(id uint, updates map[string]interface{}, assign *AssignmentRequest) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("房间不存在")
		}
		return nil, err
	}

	// 如果更新名称，需要检查唯一性
	if name, ok := updates["name"].(string); ok && name != room.Name {
		var count int64
		if err := s.DB.Model(&models.Room{}).Where("name = ? AND id != ?", name, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("房间名称已被其他房间使用")
		}
	}

	requestedStatus, _ := updates["status"].(string)
	if requestedStatus != "" && !models.IsValidRoomStatus(requestedStatus) {
		return nil, errors.New("房间状态非法")
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&room).Updates(updates).Error; err != nil {
				return err
			}
		}

		// 请求未携带租户集合时沿用当前集合，仅重新推导状态
		var want []uint
		if assign != nil {
			var err error
			want, err = resolveAssignment(tx, *assign)
			if err != nil {
				return err
			}
		} else {
			if err := tx.Model(&models.Tenant{}).Where("room_id = ?", room.ID).Pluck("id", &want).Error; err != nil {
				return err
			}
		}
		return applyRoomAssignment(tx, &room, want, requestedStatus)
	})
	if err != nil {
		return nil, err
	}

	// 重新获取更新后的房间信息
	return s.GetRoomByID(id)
}

// 5. DeleteRoom 删除房间，并清空其租户的房间引用
func (s *RoomService) DeleteRoom(id uint) error {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("房间不存在")
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Tenant{}).Where("room_id = ?", id).Update("room_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&room).Error
	})
}

// 6. GetRoomTenants 获取房间内的租户
func (s *RoomService) GetRoomTenants(roomID uint) ([]models.Tenant, error) {
	room, err := s.GetRoomByID(roomID)
	if err != nil {
		return nil, err
	}
	return room.Tenants, nil
}
