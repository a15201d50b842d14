package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roomease-http-service/internal/domain/models"
)

func TestRentShare(t *testing.T) {
	tests := []struct {
		name      string
		rent      int64
		occupants int
		want      int64
	}{
		{"空房间不产生分摊", 120000, 0, 0},
		{"负数人数视为空房间", 120000, -1, 0},
		{"单人承担全额", 120000, 1, 120000},
		{"两人平分", 120000, 2, 60000},
		{"整数除法向下取整", 100000, 3, 33333},
		{"零租金", 0, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RentShare(tt.rent, tt.occupants))
		})
	}
}

func TestTenantRent(t *testing.T) {
	roomID := uint(1)
	room := &models.Room{Rent: 120000}

	assigned := &models.Tenant{Name: "Alice", RoomID: &roomID}
	unassigned := &models.Tenant{Name: "Bob"}

	assert.Equal(t, int64(60000), TenantRent(assigned, room, 2))
	assert.Equal(t, int64(120000), TenantRent(assigned, room, 1))
	assert.Equal(t, int64(0), TenantRent(unassigned, room, 2), "未分配房间的租户租金为0")
	assert.Equal(t, int64(0), TenantRent(nil, room, 2))
	assert.Equal(t, int64(0), TenantRent(assigned, nil, 2))
}

func TestToDisplayUnits(t *testing.T) {
	assert.Equal(t, 1200.0, ToDisplayUnits(120000))
	assert.Equal(t, 0.0, ToDisplayUnits(0))
	assert.Equal(t, 0.01, ToDisplayUnits(1))
}
