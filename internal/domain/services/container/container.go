package container

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"roomease-http-service/internal/domain/services"
	"roomease-http-service/internal/infrastructure/config"
	"roomease-http-service/pkg/logger"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 数据存储服务
	redisService services.InterfaceRedisService

	// 通知服务
	notificationService services.InterfaceNotificationService

	// 业务服务
	roomService      services.InterfaceRoomService
	tenantService    services.InterfaceTenantService
	paymentService   services.InterfacePaymentService
	dashboardService services.InterfaceDashboardService
	reconcileService services.InterfaceReconcileService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warning("Redis连接测试失败: %v，将不使用Redis缓存", err)
			redisClient = nil
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化Redis服务（仅当Redis可用）
	if c.redis != nil {
		c.redisService = services.NewRedisServiceWithClient(c.redis)
	}

	// 初始化通知服务
	c.notificationService = services.NewNotificationService()

	// 初始化业务服务
	c.roomService = services.NewRoomService(c.db, c.config)
	c.tenantService = services.NewTenantService(c.db, c.config)
	c.paymentService = services.NewPaymentService(c.db, c.config)
	c.dashboardService = services.NewDashboardService(c.db, c.config, c.redisService)
	c.reconcileService = services.NewReconcileService(c.db, c.config)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "redis":
		return c.redisService
	case "notification":
		return c.notificationService
	case "room":
		return c.roomService
	case "tenant":
		return c.tenantService
	case "payment":
		return c.paymentService
	case "dashboard":
		return c.dashboardService
	case "reconcile":
		return c.reconcileService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
