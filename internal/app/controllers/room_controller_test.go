package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"roomease-http-service/internal/app/routes"
	"roomease-http-service/internal/domain/models"
	"roomease-http-service/internal/domain/services/container"
	"roomease-http-service/internal/infrastructure/config"
)

// setupTestRouter 创建内存数据库、服务容器和路由
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Room{}, &models.Tenant{}, &models.Payment{}))

	serviceContainer := container.NewServiceContainer(db, &config.Config{}, nil)
	return routes.SetupRouterWithContainer(serviceContainer), db
}

// testClientAddr 根据测试名派生一个稳定的客户端地址
func testClientAddr(t *testing.T) string {
	t.Helper()
	h := fnv.New32a()
	_, _ = h.Write([]byte(t.Name()))
	sum := h.Sum32()
	return fmt.Sprintf("10.1.%d.%d:52000", byte(sum>>8), byte(sum))
}

// doJSON 发送JSON请求并解析统一响应包装
func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	// 每个测试使用独立的客户端IP，避免共享IP限流桶
	req.RemoteAddr = testClientAddr(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope map[string]interface{}
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		_ = json.Unmarshal(w.Body.Bytes(), &envelope)
	}
	return w, envelope
}

func TestRoomCRUDOverHTTP(t *testing.T) {
	r, _ := setupTestRouter(t)

	// 创建房间
	w, resp := doJSON(t, r, http.MethodPost, "/api/rooms", gin.H{"name": "Room 101", "rent": 120000})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := resp["data"].(map[string]interface{})
	roomID := uint(data["id"].(float64))
	assert.Equal(t, "available", data["status"])

	// 查询详情
	w, resp = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/rooms/%d", roomID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, "Room 101", data["name"])
	assert.Equal(t, false, data["occupied"])

	// 更新租金
	w, resp = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/rooms/%d", roomID), gin.H{"rent": 130000})
	require.Equal(t, http.StatusOK, w.Code)
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, float64(130000), data["rent"])

	// 删除
	w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/rooms/%d", roomID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/rooms/%d", roomID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoomSaveSyncsTenantsOverHTTP(t *testing.T) {
	r, _ := setupTestRouter(t)

	// 准备两名未分配租户
	w, resp := doJSON(t, r, http.MethodPost, "/api/tenants", gin.H{"name": "Alice"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	aliceID := uint(resp["data"].(map[string]interface{})["id"].(float64))

	w, _ = doJSON(t, r, http.MethodPost, "/api/tenants", gin.H{"name": "Bob"})
	require.Equal(t, http.StatusCreated, w.Code)

	// 创建房间并按名称关联两人
	w, resp = doJSON(t, r, http.MethodPost, "/api/rooms", gin.H{
		"name":         "Room 101",
		"rent":         120000,
		"tenant_names": []string{"Alice", "Bob"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := resp["data"].(map[string]interface{})
	roomID := uint(data["id"].(float64))
	assert.Equal(t, "occupied", data["status"])
	assert.Equal(t, true, data["occupied"])
	assert.ElementsMatch(t, []interface{}{"Alice", "Bob"}, data["tenant_names"].([]interface{}))

	// 房间内租户各分摊一半租金
	w, resp = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/rooms/%d/tenants", roomID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	tenants := resp["data"].([]interface{})
	require.Len(t, tenants, 2)
	for _, item := range tenants {
		tenant := item.(map[string]interface{})
		assert.Equal(t, float64(60000), tenant["rent"])
	}

	// 保存房间移除Alice，房间保持occupied，Alice未分配
	w, resp = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/rooms/%d", roomID), gin.H{
		"tenant_names": []string{"Bob"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	data = resp["data"].(map[string]interface{})
	assert.ElementsMatch(t, []interface{}{"Bob"}, data["tenant_names"].([]interface{}))

	w, resp = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/tenants/%d", aliceID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	tenant := resp["data"].(map[string]interface{})
	assert.Nil(t, tenant["room_id"])
	assert.Equal(t, float64(0), tenant["rent"])

	// 清空房间后状态回到available
	w, resp = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/rooms/%d", roomID), gin.H{
		"tenant_names": []string{},
	})
	require.Equal(t, http.StatusOK, w.Code)
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, "available", data["status"])
}

func TestTenantSaveMovesRoomOverHTTP(t *testing.T) {
	r, _ := setupTestRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/rooms", gin.H{"name": "Room 101", "rent": 120000})
	require.Equal(t, http.StatusCreated, w.Code)
	_ = resp

	w, _ = doJSON(t, r, http.MethodPost, "/api/rooms", gin.H{"name": "Room 102", "rent": 90000})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp = doJSON(t, r, http.MethodPost, "/api/tenants", gin.H{"name": "Alice", "room_name": "Room 101"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tenant := resp["data"].(map[string]interface{})
	tenantID := uint(tenant["id"].(float64))
	assert.Equal(t, "Room 101", tenant["room_name"])
	assert.Equal(t, float64(120000), tenant["rent"])

	// 迁移到Room 102
	w, resp = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/tenants/%d", tenantID), gin.H{"room_name": "Room 102"})
	require.Equal(t, http.StatusOK, w.Code)
	tenant = resp["data"].(map[string]interface{})
	assert.Equal(t, "Room 102", tenant["room_name"])
	assert.Equal(t, float64(90000), tenant["rent"])

	// 旧房间空出，新房间占用
	w, resp = doJSON(t, r, http.MethodGet, "/api/rooms?search=Room+101", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := resp["data"].(map[string]interface{})["data"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "available", list[0].(map[string]interface{})["status"])
}

func TestRoomPutReplacesOverHTTP(t *testing.T) {
	r, _ := setupTestRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/tenants", gin.H{"name": "Alice"})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doJSON(t, r, http.MethodPost, "/api/rooms", gin.H{
		"name":         "Room 101",
		"rent":         120000,
		"tenant_names": []string{"Alice"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	roomID := uint(resp["data"].(map[string]interface{})["id"].(float64))

	// PUT整体替换：缺省tenant_names清空房间，缺省rent归零
	w, resp = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/rooms/%d", roomID), gin.H{
		"name": "Room 101A",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "Room 101A", data["name"])
	assert.Equal(t, float64(0), data["rent"])
	assert.Equal(t, "available", data["status"])
	assert.Empty(t, data["tenant_names"])

	// 缺省名称的PUT被拒绝
	w, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/rooms/%d", roomID), gin.H{"rent": 100})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTenantPutReplacesOverHTTP(t *testing.T) {
	r, _ := setupTestRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/rooms", gin.H{"name": "Room 101", "rent": 120000})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doJSON(t, r, http.MethodPost, "/api/tenants", gin.H{
		"name":           "Alice",
		"room_name":      "Room 101",
		"payment_status": "paid",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tenantID := uint(resp["data"].(map[string]interface{})["id"].(float64))

	// PUT整体替换：缺省房间引用解除分配，缺省支付状态回到not_paid
	w, resp = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/tenants/%d", tenantID), gin.H{
		"name": "Alice",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tenant := resp["data"].(map[string]interface{})
	assert.Nil(t, tenant["room_id"])
	assert.Equal(t, "not_paid", tenant["payment_status"])
	assert.Equal(t, float64(0), tenant["rent"])

	// 原房间空出
	w, resp = doJSON(t, r, http.MethodGet, "/api/rooms?search=Room+101", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := resp["data"].(map[string]interface{})["data"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "available", list[0].(map[string]interface{})["status"])
}

func TestRoomInvalidRequestsOverHTTP(t *testing.T) {
	r, _ := setupTestRouter(t)

	// 非数字ID
	w, _ := doJSON(t, r, http.MethodGet, "/api/rooms/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 非法状态过滤
	w, _ = doJSON(t, r, http.MethodGet, "/api/rooms?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 重名创建
	w, _ = doJSON(t, r, http.MethodPost, "/api/rooms", gin.H{"name": "Room 101", "rent": 100})
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = doJSON(t, r, http.MethodPost, "/api/rooms", gin.H{"name": "Room 101", "rent": 100})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReconcileEndpoint(t *testing.T) {
	r, db := setupTestRouter(t)

	// 制造漂移：房间available但有租户
	room := &models.Room{Name: "Room 101", Rent: 120000, Status: models.RoomStatusAvailable}
	require.NoError(t, db.Create(room).Error)
	tenant := &models.Tenant{Name: "Alice", RoomID: &room.ID, PaymentStatus: models.PaymentStatusNotPaid}
	require.NoError(t, db.Create(tenant).Error)

	w, resp := doJSON(t, r, http.MethodPost, "/api/reconcile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp["data"].(map[string]interface{})["repaired"])

	// 幂等：再跑一次没有修正
	w, resp = doJSON(t, r, http.MethodPost, "/api/reconcile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), resp["data"].(map[string]interface{})["repaired"])
}

func TestDashboardEndpoints(t *testing.T) {
	r, _ := setupTestRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/rooms", gin.H{"name": "Room 101", "rent": 120000})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doJSON(t, r, http.MethodGet, "/api/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), summary["total_rooms"])
	assert.Equal(t, float64(1), summary["available_rooms"])

	w, _ = doJSON(t, r, http.MethodGet, "/api/dashboard/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")), "导出内容应为xlsx文件")
}

func TestNotificationsPublishedOnWrites(t *testing.T) {
	r, _ := setupTestRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/rooms", gin.H{"name": "Room 101", "rent": 120000})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doJSON(t, r, http.MethodGet, "/api/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	notifications := resp["data"].([]interface{})
	require.NotEmpty(t, notifications)
	first := notifications[0].(map[string]interface{})
	assert.Equal(t, "success", first["type"])
}

func TestPaymentFlowOverHTTP(t *testing.T) {
	r, _ := setupTestRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/tenants", gin.H{"name": "Alice"})
	require.Equal(t, http.StatusCreated, w.Code)
	tenantID := uint(resp["data"].(map[string]interface{})["id"].(float64))

	w, resp = doJSON(t, r, http.MethodPost, "/api/payments", gin.H{"tenant_id": tenantID, "amount": 60000})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	payment := resp["data"].(map[string]interface{})
	assert.Equal(t, "Alice", payment["tenant_name"])

	// 租户被标记为已支付
	w, resp = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/tenants/%d", tenantID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "paid", resp["data"].(map[string]interface{})["payment_status"])

	// 金额非法
	w, _ = doJSON(t, r, http.MethodPost, "/api/payments", gin.H{"tenant_id": tenantID, "amount": -5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
