package models

// 租户支付状态常量
const (
	PaymentStatusPaid    = "paid"     // 已支付
	PaymentStatusNotPaid = "not_paid" // 未支付
)

// Tenant 表示租户信息
type Tenant struct {
	BaseModel
	Name          string `gorm:"type:varchar(50);not null" json:"name"`                // 租户姓名
	RoomID        *uint  `gorm:"index" json:"room_id"`                                 // 关联的房间ID，可为空
	PaymentStatus string `gorm:"type:varchar(20);default:'not_paid'" json:"payment_status"` // 支付状态：paid, not_paid

	// Relations - 关联关系
	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"` // 关联的房间（多对一）

	// 派生字段，不落库。租金始终按当前入住人数现算，避免陈旧值
	RoomName string `gorm:"-" json:"room_name"`
	Rent     int64  `gorm:"-" json:"rent"`
}

// IsValidPaymentStatus 检查支付状态是否合法
func IsValidPaymentStatus(status string) bool {
	return status == PaymentStatusPaid || status == PaymentStatusNotPaid
}

// Assigned 返回租户是否已分配房间
func (t *Tenant) Assigned() bool {
	return t.RoomID != nil
}
