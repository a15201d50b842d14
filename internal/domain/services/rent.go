package services

import "roomease-http-service/internal/domain/models"

// RentShare 计算单个租户应分摊的月租金。
// 租金按最小货币单位（分）做整数除法，无人入住时返回0。
func RentShare(roomRent int64, occupants int) int64 {
	if occupants <= 0 {
		return 0
	}
	return roomRent / int64(occupants)
}

// TenantRent 计算租户当前应付的租金。
// 未分配房间的租户租金为0；其余为 房间租金 / 入住人数。
func TenantRent(tenant *models.Tenant, room *models.Room, occupants int) int64 {
	if tenant == nil || !tenant.Assigned() || room == nil {
		return 0
	}
	return RentShare(room.Rent, occupants)
}

// ToDisplayUnits 将最小货币单位金额换算为显示单位（元）
func ToDisplayUnits(minor int64) float64 {
	return float64(minor) / 100
}
