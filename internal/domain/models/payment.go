package models

// Payment 表示一笔租金收款记录
type Payment struct {
	BaseModel
	TenantID uint  `gorm:"index;not null" json:"tenant_id"` // 付款租户ID
	RoomID   *uint `gorm:"index" json:"room_id"`            // 收款时租户所在房间ID，可为空
	Amount   int64 `gorm:"not null" json:"amount"`          // 金额，以最小货币单位（分）存储

	// Relations - 关联关系
	Tenant *Tenant `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Room   *Room   `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	// 派生字段，不落库
	TenantName string `gorm:"-" json:"tenant_name"`
	RoomName   string `gorm:"-" json:"room_name"`
}
