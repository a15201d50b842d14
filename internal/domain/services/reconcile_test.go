package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomease-http-service/internal/domain/models"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name      string
		occupants int
		requested string
		current   string
		want      string
	}{
		{"有人入住一定是occupied", 2, models.RoomStatusAvailable, models.RoomStatusAvailable, models.RoomStatusOccupied},
		{"有人入住覆盖请求的reserved", 1, models.RoomStatusReserved, models.RoomStatusAvailable, models.RoomStatusOccupied},
		{"空房间采纳请求的reserved", 0, models.RoomStatusReserved, models.RoomStatusOccupied, models.RoomStatusReserved},
		{"空房间不接受请求的occupied", 0, models.RoomStatusOccupied, models.RoomStatusReserved, models.RoomStatusReserved},
		{"空房间沿用现有的非入住状态", 0, "", models.RoomStatusReserved, models.RoomStatusReserved},
		{"空房间现有occupied回退为available", 0, "", models.RoomStatusOccupied, models.RoomStatusAvailable},
		{"无任何依据时回退为available", 0, "", "", models.RoomStatusAvailable},
		{"非法请求状态被忽略", 0, "bogus", models.RoomStatusReserved, models.RoomStatusReserved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deriveStatus(tt.occupants, tt.requested, tt.current))
		})
	}
}

func TestReconcileRoomRepairsDrift(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReconcileService(db, testConfig())

	// 房间标记为available，但实际有租户入住（外部写入造成的漂移）
	room := mustCreateRoom(t, db, "Room 101", 120000, models.RoomStatusAvailable)
	mustCreateTenant(t, db, "Alice", &room.ID, "")

	changed, err := svc.ReconcileRoom(room.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	var got models.Room
	require.NoError(t, db.First(&got, room.ID).Error)
	assert.Equal(t, models.RoomStatusOccupied, got.Status)
}

func TestReconcileRoomIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReconcileService(db, testConfig())

	room := mustCreateRoom(t, db, "Room 101", 120000, models.RoomStatusAvailable)
	mustCreateTenant(t, db, "Alice", &room.ID, "")

	changed, err := svc.ReconcileRoom(room.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	// 第二次运行不再产生修正
	changed, err = svc.ReconcileRoom(room.ID)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestReconcileAll(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReconcileService(db, testConfig())

	// 两个漂移的房间和一个一致的房间
	drifted1 := mustCreateRoom(t, db, "Room 101", 120000, models.RoomStatusAvailable)
	mustCreateTenant(t, db, "Alice", &drifted1.ID, "")

	drifted2 := mustCreateRoom(t, db, "Room 102", 90000, models.RoomStatusOccupied)
	// 标记occupied但无人入住

	consistent := mustCreateRoom(t, db, "Room 201", 150000, models.RoomStatusReserved)
	_ = consistent

	repaired, err := svc.ReconcileAll()
	require.NoError(t, err)
	assert.Equal(t, 2, repaired)

	var r1, r2, r3 models.Room
	require.NoError(t, db.First(&r1, drifted1.ID).Error)
	require.NoError(t, db.First(&r2, drifted2.ID).Error)
	require.NoError(t, db.First(&r3, consistent.ID).Error)
	assert.Equal(t, models.RoomStatusOccupied, r1.Status)
	assert.Equal(t, models.RoomStatusAvailable, r2.Status)
	assert.Equal(t, models.RoomStatusReserved, r3.Status, "一致的房间不受影响")

	// 再跑一次应该没有任何修正
	repaired, err = svc.ReconcileAll()
	require.NoError(t, err)
	assert.Equal(t, 0, repaired)
}
