package routes

import (
	"time"

	_ "roomease-http-service/docs"
	"roomease-http-service/internal/app/controllers"
	"roomease-http-service/internal/app/middleware"
	"roomease-http-service/internal/domain/services/container"
	"roomease-http-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.CORSAllowOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// SetupRouterWithContainer 使用已有的服务容器初始化路由，供测试使用
func SetupRouterWithContainer(serviceContainer *container.ServiceContainer) *gin.Engine {
	r := gin.New()
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册业务路由
	registerResourceRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 健康检查路由
	api.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(container, "ping")) // 兼容Docker健康检查的路由
	api.GET("/health/status", controllers.HandleHealthFunc(container, "status"))
}

// registerResourceRoutes 注册业务路由
func registerResourceRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加IP限流中间件 - 每秒允许30个请求，最多突发50个请求
	api.Use(middleware.IPRateLimiter(30, 50))
	// 写操作成功后清空GET响应缓存
	api.Use(middleware.PurgeOnWrite())

	// 房间路由
	roomGroup := api.Group("/rooms")
	roomGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleRoomFunc(container, "getRooms"))
	roomGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleRoomFunc(container, "getRoom"))
	roomGroup.GET("/:id/tenants", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleRoomFunc(container, "getRoomTenants"))
	roomGroup.POST("", controllers.HandleRoomFunc(container, "createRoom"))
	roomGroup.PATCH("/:id", controllers.HandleRoomFunc(container, "updateRoom"))
	roomGroup.PUT("/:id", controllers.HandleRoomFunc(container, "updateRoom"))
	roomGroup.DELETE("/:id", controllers.HandleRoomFunc(container, "deleteRoom"))

	// 租户路由
	tenantGroup := api.Group("/tenants")
	tenantGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleTenantFunc(container, "getTenants"))
	tenantGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleTenantFunc(container, "getTenant"))
	tenantGroup.POST("", controllers.HandleTenantFunc(container, "createTenant"))
	tenantGroup.PATCH("/:id", controllers.HandleTenantFunc(container, "updateTenant"))
	tenantGroup.PUT("/:id", controllers.HandleTenantFunc(container, "updateTenant"))
	tenantGroup.DELETE("/:id", controllers.HandleTenantFunc(container, "deleteTenant"))

	// 支付路由
	paymentGroup := api.Group("/payments")
	paymentGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 10 * time.Second}), controllers.HandlePaymentFunc(container, "getPayments"))
	paymentGroup.POST("", controllers.HandlePaymentFunc(container, "recordPayment"))

	// 仪表盘路由
	dashboardGroup := api.Group("/dashboard")
	dashboardGroup.GET("/summary", controllers.HandleDashboardFunc(container, "getSummary"))
	dashboardGroup.GET("/activity", middleware.Cache(middleware.CacheConfig{Expiration: 10 * time.Second}), controllers.HandleDashboardFunc(container, "getRecentActivity"))
	dashboardGroup.GET("/export", middleware.PathRateLimiter(1, 3), controllers.HandleDashboardFunc(container, "exportReport"))

	// 通知路由
	notificationGroup := api.Group("/notifications")
	notificationGroup.GET("", controllers.HandleNotificationFunc(container, "getNotifications"))
	notificationGroup.GET("/stream", controllers.HandleNotificationFunc(container, "streamNotifications"))

	// 一致性对账路由
	api.POST("/reconcile", middleware.PathRateLimiter(1, 3), controllers.HandleReconcileFunc(container, "reconcileAll"))
}
