package models

// 房间状态常量
const (
	RoomStatusAvailable = "available" // 可入住
	RoomStatusOccupied  = "occupied"  // 已入住
	RoomStatusReserved  = "reserved"  // 已预订
)

// Room 表示房间信息
type Room struct {
	BaseModel
	Name   string `gorm:"type:varchar(50);unique;not null" json:"name"`          // 房间名称，如"Room 101"
	Rent   int64  `gorm:"not null;default:0" json:"rent"`                        // 月租金，以最小货币单位（分）存储
	Status string `gorm:"type:varchar(20);default:'available'" json:"status"`    // 状态：available, occupied, reserved

	// Relations - 关联关系
	Tenants []Tenant `gorm:"foreignKey:RoomID" json:"tenants,omitempty"` // 房间内的租户（一对多）

	// 派生字段，不落库，序列化时由服务层填充
	Occupied    bool     `gorm:"-" json:"occupied"`
	TenantNames []string `gorm:"-" json:"tenant_names"`
}

// IsValidRoomStatus 检查房间状态是否合法
func IsValidRoomStatus(status string) bool {
	switch status {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusReserved:
		return true
	}
	return false
}

// EffectiveStatus 返回房间的有效状态。
// 旧数据可能没有status字段，此时根据occupied标志回退推导。
func (r *Room) EffectiveStatus() string {
	if r.Status != "" {
		return r.Status
	}
	if len(r.Tenants) > 0 {
		return RoomStatusOccupied
	}
	return RoomStatusAvailable
}

// Decorate 填充派生字段（occupied、tenant_names）
func (r *Room) Decorate() {
	r.Occupied = len(r.Tenants) > 0
	names := make([]string, 0, len(r.Tenants))
	for _, t := range r.Tenants {
		names = append(names, t.Name)
	}
	r.TenantNames = names
}
