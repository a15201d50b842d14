package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomease-http-service/internal/domain/models"
)

func TestCreateRoomDefaultsToAvailable(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db, testConfig())

	room, err := svc.CreateRoom(&models.Room{Name: "Room 101", Rent: 120000}, nil)
	require.NoError(t, err)

	assert.Equal(t, models.RoomStatusAvailable, room.Status)
	assert.False(t, room.Occupied)
	assert.Empty(t, room.TenantNames)
}

func TestCreateRoomValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db, testConfig())

	_, err := svc.CreateRoom(&models.Room{Name: "  ", Rent: 100}, nil)
	assert.Error(t, err, "空名称被拒绝")

	_, err = svc.CreateRoom(&models.Room{Name: "Room 101", Rent: -1}, nil)
	assert.Error(t, err, "负租金被拒绝")

	_, err = svc.CreateRoom(&models.Room{Name: "Room 101", Rent: 100}, nil)
	require.NoError(t, err)
	_, err = svc.CreateRoom(&models.Room{Name: "Room 101", Rent: 200}, nil)
	assert.Error(t, err, "重名被拒绝")
}

func TestCreateRoomWithAssignment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db, testConfig())

	mustCreateTenant(t, db, "Alice", nil, "")
	mustCreateTenant(t, db, "Bob", nil, "")

	room, err := svc.CreateRoom(&models.Room{Name: "Room 101", Rent: 120000},
		&AssignmentRequest{TenantNames: []string{"Alice", "Bob", "Nobody"}})
	require.NoError(t, err)

	// 未匹配的名称按不存在处理
	assert.ElementsMatch(t, []string{"Alice", "Bob"}, room.TenantNames)
	assert.True(t, room.Occupied)
	assert.Equal(t, models.RoomStatusOccupied, room.Status)

	// 两人平分租金
	for _, tenant := range room.Tenants {
		assert.Equal(t, int64(60000), tenant.Rent)
		assert.Equal(t, "Room 101", tenant.RoomName)
	}
}

func TestUpdateRoomAssignmentMovesTenants(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db, testConfig())

	room := mustCreateRoom(t, db, "Room 101", 120000, models.RoomStatusOccupied)
	alice := mustCreateTenant(t, db, "Alice", &room.ID, "")
	bob := mustCreateTenant(t, db, "Bob", &room.ID, "")
	carol := mustCreateTenant(t, db, "Carol", nil, "")

	// 保存房间：移除Bob，加入Carol
	updated, err := svc.UpdateRoom(room.ID, nil, &AssignmentRequest{TenantIDs: []uint{alice.ID, carol.ID}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Alice", "Carol"}, updated.TenantNames)

	var gotBob models.Tenant
	require.NoError(t, db.First(&gotBob, bob.ID).Error)
	assert.Nil(t, gotBob.RoomID, "被移除的租户清空房间引用")
}

func TestUpdateRoomClearTenants(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db, testConfig())

	room := mustCreateRoom(t, db, "Room 101", 120000, models.RoomStatusOccupied)
	mustCreateTenant(t, db, "Alice", &room.ID, "")

	// 显式传空集合清空房间
	updated, err := svc.UpdateRoom(room.ID, nil, &AssignmentRequest{})
	require.NoError(t, err)
	assert.Empty(t, updated.TenantNames)
	assert.Equal(t, models.RoomStatusAvailable, updated.Status)
}

func TestUpdateRoomWithoutAssignmentKeepsTenants(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db, testConfig())

	room := mustCreateRoom(t, db, "Room 101", 120000, models.RoomStatusOccupied)
	mustCreateTenant(t, db, "Alice", &room.ID, "")

	// 请求不携带租户集合时只更新字段，关联不变
	updated, err := svc.UpdateRoom(room.ID, map[string]interface{}{"rent": int64(130000)}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(130000), updated.Rent)
	assert.ElementsMatch(t, []string{"Alice"}, updated.TenantNames)
	assert.Equal(t, models.RoomStatusOccupied, updated.Status)
}

func TestUpdateRoomStatusRequestIgnoredWhileOccupied(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db, testConfig())

	room := mustCreateRoom(t, db, "Room 101", 120000, models.RoomStatusOccupied)
	mustCreateTenant(t, db, "Alice", &room.ID, "")

	// 有人入住时请求的available不生效
	updated, err := svc.UpdateRoom(room.ID, map[string]interface{}{"status": models.RoomStatusAvailable}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusOccupied, updated.Status)
}

func TestUpdateRoomIdempotentAssignment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db, testConfig())

	room := mustCreateRoom(t, db, "Room 101", 120000, "")
	alice := mustCreateTenant(t, db, "Alice", nil, "")

	assign := &AssignmentRequest{TenantIDs: []uint{alice.ID}}
	first, err := svc.UpdateRoom(room.ID, nil, assign)
	require.NoError(t, err)

	// 同一请求重复提交结果不变
	second, err := svc.UpdateRoom(room.ID, nil, assign)
	require.NoError(t, err)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.TenantNames, second.TenantNames)
}

func TestDeleteRoomUnassignsTenants(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db, testConfig())

	room := mustCreateRoom(t, db, "Room 101", 120000, models.RoomStatusOccupied)
	alice := mustCreateTenant(t, db, "Alice", &room.ID, "")

	require.NoError(t, svc.DeleteRoom(room.ID))

	var got models.Tenant
	require.NoError(t, db.First(&got, alice.ID).Error)
	assert.Nil(t, got.RoomID)

	_, err := svc.GetRoomByID(room.ID)
	assert.Error(t, err)
}

func TestGetAllRoomsFilterAndSearch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db, testConfig())

	occupied := mustCreateRoom(t, db, "Room 101", 120000, models.RoomStatusOccupied)
	mustCreateTenant(t, db, "Alice", &occupied.ID, "")
	mustCreateRoom(t, db, "Room 102", 90000, models.RoomStatusAvailable)
	mustCreateRoom(t, db, "Suite 201", 150000, models.RoomStatusReserved)
	// 旧数据：无状态字段，有人入住
	legacy := mustCreateRoom(t, db, "Room 301", 80000, "")
	mustCreateTenant(t, db, "Bob", &legacy.ID, "")

	// 确认状态列确实为空串，而不是落到了列默认值
	var stored models.Room
	require.NoError(t, db.First(&stored, legacy.ID).Error)
	require.Empty(t, stored.Status)

	rooms, total, err := svc.GetAllRooms(1, 10, models.RoomStatusOccupied, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total, "旧数据按实际入住情况计入occupied")
	assert.Len(t, rooms, 2)

	rooms, total, err = svc.GetAllRooms(1, 10, "", "suite")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total, "搜索不区分大小写")
	assert.Equal(t, "Suite 201", rooms[0].Name)

	_, total, err = svc.GetAllRooms(1, 10, models.RoomStatusReserved, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestGetRoomTenants(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db, testConfig())

	room := mustCreateRoom(t, db, "Room 101", 120000, models.RoomStatusOccupied)
	mustCreateTenant(t, db, "Alice", &room.ID, "")
	mustCreateTenant(t, db, "Bob", &room.ID, "")

	tenants, err := svc.GetRoomTenants(room.ID)
	require.NoError(t, err)
	require.Len(t, tenants, 2)
	for _, tenant := range tenants {
		assert.Equal(t, int64(60000), tenant.Rent)
	}
}
