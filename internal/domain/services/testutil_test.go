package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"roomease-http-service/internal/domain/models"
	"roomease-http-service/internal/infrastructure/config"
)

// setupTestDB 创建内存sqlite数据库并迁移全部表
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&models.Room{}, &models.Tenant{}, &models.Payment{}); err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}
	return db
}

// testConfig 返回测试用的最小配置
func testConfig() *config.Config {
	return &config.Config{}
}

// mustCreateRoom 直接写入一个房间
func mustCreateRoom(t *testing.T, db *gorm.DB, name string, rent int64, status string) *models.Room {
	t.Helper()

	room := &models.Room{Name: name, Rent: rent, Status: status}
	if err := db.Create(room).Error; err != nil {
		t.Fatalf("创建测试房间失败: %v", err)
	}
	// status列带默认值'available'，零值会被GORM忽略；
	// 模拟旧数据的空状态需要显式写回
	if status == "" {
		if err := db.Model(room).Update("status", "").Error; err != nil {
			t.Fatalf("写入空状态失败: %v", err)
		}
		room.Status = ""
	}
	return room
}

// mustCreateTenant 直接写入一个租户
func mustCreateTenant(t *testing.T, db *gorm.DB, name string, roomID *uint, paymentStatus string) *models.Tenant {
	t.Helper()

	if paymentStatus == "" {
		paymentStatus = models.PaymentStatusNotPaid
	}
	tenant := &models.Tenant{Name: name, RoomID: roomID, PaymentStatus: paymentStatus}
	if err := db.Create(tenant).Error; err != nil {
		t.Fatalf("创建测试租户失败: %v", err)
	}
	return tenant
}
