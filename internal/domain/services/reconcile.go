package services

import (
	"gorm.io/gorm"

	"roomease-http-service/internal/domain/models"
	"roomease-http-service/internal/infrastructure/config"
)

// AssignmentRequest 表示一次房间保存中请求的租户集合。
// 关联以稳定的租户ID为准；名称仅作兼容旧客户端的引用方式，
// 按精确匹配解析，无法匹配的引用按不存在处理。
type AssignmentRequest struct {
	TenantIDs   []uint
	TenantNames []string
}

// resolveAssignment 把请求中的租户引用解析为去重后的租户ID集合
func resolveAssignment(tx *gorm.DB, req AssignmentRequest) ([]uint, error) {
	if len(req.TenantIDs) == 0 && len(req.TenantNames) == 0 {
		return nil, nil
	}

	query := tx.Model(&models.Tenant{})
	switch {
	case len(req.TenantIDs) > 0 && len(req.TenantNames) > 0:
		query = query.Where("id IN ?", req.TenantIDs).Or("name IN ?", req.TenantNames)
	case len(req.TenantIDs) > 0:
		query = query.Where("id IN ?", req.TenantIDs)
	default:
		query = query.Where("name IN ?", req.TenantNames)
	}

	var ids []uint
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// deriveStatus 推导房间状态。
// 有租户入住的房间一定是occupied；空房间保留编辑者选择的非入住状态
// （available或reserved），否则沿用现有的非入住状态，最后回退为available。
func deriveStatus(occupants int, requested, current string) string {
	if occupants > 0 {
		return models.RoomStatusOccupied
	}
	if models.IsValidRoomStatus(requested) && requested != models.RoomStatusOccupied {
		return requested
	}
	if models.IsValidRoomStatus(current) && current != models.RoomStatusOccupied {
		return current
	}
	return models.RoomStatusAvailable
}

// applyRoomAssignment 在同一事务内把房间的租户集合调整为want，并修正房间状态。
// 对相同的want重复调用不会产生新的写入（幂等）。
func applyRoomAssignment(tx *gorm.DB, room *models.Room, want []uint, requestedStatus string) error {
	var currentIDs []uint
	if err := tx.Model(&models.Tenant{}).Where("room_id = ?", room.ID).Pluck("id", &currentIDs).Error; err != nil {
		return err
	}

	wantSet := make(map[uint]bool, len(want))
	for _, id := range want {
		wantSet[id] = true
	}
	currentSet := make(map[uint]bool, len(currentIDs))
	for _, id := range currentIDs {
		currentSet[id] = true
	}

	// 集合差：added = want − current，removed = current − want
	var added, removed []uint
	for _, id := range want {
		if !currentSet[id] {
			added = append(added, id)
		}
	}
	for _, id := range currentIDs {
		if !wantSet[id] {
			removed = append(removed, id)
		}
	}

	if len(added) > 0 {
		if err := tx.Model(&models.Tenant{}).Where("id IN ?", added).Update("room_id", room.ID).Error; err != nil {
			return err
		}
	}
	if len(removed) > 0 {
		if err := tx.Model(&models.Tenant{}).Where("id IN ?", removed).Update("room_id", nil).Error; err != nil {
			return err
		}
	}

	status := deriveStatus(len(want), requestedStatus, room.Status)
	if status != room.Status {
		if err := tx.Model(room).Update("status", status).Error; err != nil {
			return err
		}
		room.Status = status
	}
	return nil
}

// recomputeRoomStatus 按实际入住人数修正单个房间的状态，返回是否发生修正。
// 租户侧保存移动租户后，旧房间和新房间都要经过这里。
func recomputeRoomStatus(tx *gorm.DB, roomID uint) (bool, error) {
	var room models.Room
	if err := tx.First(&room, roomID).Error; err != nil {
		return false, err
	}

	var count int64
	if err := tx.Model(&models.Tenant{}).Where("room_id = ?", roomID).Count(&count).Error; err != nil {
		return false, err
	}

	status := deriveStatus(int(count), "", room.Status)
	if status == room.Status {
		return false, nil
	}
	if err := tx.Model(&room).Update("status", status).Error; err != nil {
		return false, err
	}
	return true, nil
}

// InterfaceReconcileService 定义对账服务接口
type InterfaceReconcileService interface {
	ReconcileRoom(roomID uint) (bool, error)
	ReconcileAll() (int, error)
}

// ReconcileService 提供房间/租户一致性对账服务。
// 单次保存在事务内已保证一致，对账用于修复外部写入造成的漂移。
type ReconcileService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewReconcileService 创建一个新的对账服务
func NewReconcileService(db *gorm.DB, cfg *config.Config) InterfaceReconcileService {
	return &ReconcileService{
		DB:     db,
		Config: cfg,
	}
}

// ReconcileRoom 修正单个房间的状态
func (s *ReconcileService) ReconcileRoom(roomID uint) (bool, error) {
	var changed bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		changed, err = recomputeRoomStatus(tx, roomID)
		return err
	})
	return changed, err
}

// ReconcileAll 遍历所有房间，按实际入住人数修正状态，返回修正的房间数
func (s *ReconcileService) ReconcileAll() (int, error) {
	var roomIDs []uint
	if err := s.DB.Model(&models.Room{}).Pluck("id", &roomIDs).Error; err != nil {
		return 0, err
	}

	repaired := 0
	for _, id := range roomIDs {
		changed, err := s.ReconcileRoom(id)
		if err != nil {
			return repaired, err
		}
		if changed {
			repaired++
		}
	}
	return repaired, nil
}
