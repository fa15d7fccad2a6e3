package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/eshop/docs" // swagger文档(swag生成)
	appcustomer "github.com/xiebiao/eshop/internal/application/customer"
	apporder "github.com/xiebiao/eshop/internal/application/order"
	appproduct "github.com/xiebiao/eshop/internal/application/product"
	"github.com/xiebiao/eshop/internal/domain/customer"
	"github.com/xiebiao/eshop/internal/domain/product"
	"github.com/xiebiao/eshop/internal/infrastructure/config"
	"github.com/xiebiao/eshop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/eshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/eshop/internal/interface/http/handler"
	"github.com/xiebiao/eshop/internal/interface/http/middleware"
	"github.com/xiebiao/eshop/pkg/circuitbreaker"
	"github.com/xiebiao/eshop/pkg/jwt"
	"github.com/xiebiao/eshop/pkg/metrics"
	"github.com/xiebiao/eshop/pkg/mq"
	"github.com/xiebiao/eshop/pkg/response"
	"github.com/xiebiao/eshop/pkg/tracing"
)

// @title           eshop API
// @version         1.0
// @description     电商下单服务API文档（客户、商品、订单）
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// main 主程序入口
// 说明：手动依赖注入（wire.go提供Wire版本，运行wire gen生成）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 初始化Prometheus指标
	metrics.InitMetrics()

	// 3. 初始化链路追踪（可选）
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer("eshop-api", cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatalf("初始化链路追踪失败: %v", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("关闭链路追踪失败: %v", err)
			}
		}()
	}

	// 4. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 5. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 6. 初始化消息队列（可选,本地开发可关闭）
	var publisher apporder.EventPublisher
	if cfg.MQ.Enabled {
		p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("初始化消息队列失败: %v", err)
		}
		defer p.Close()
		publisher = p
	}

	// 7. 依赖注入（手动组装）
	// 依赖注入链：Repository ← Service ← UseCase ← Handler

	// 基础设施层
	customerRepo := mysql.NewCustomerRepository(db)
	productRepo := mysql.NewProductRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	orderCache := redis.NewOrderCache(redisClient, 10*time.Minute)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 订单缓存熔断器:连续5次Redis故障后打开,30秒后半开试探
	cacheBreaker := circuitbreaker.NewCircuitBreaker("order-cache", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	cacheBreaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		log.Printf("熔断器[%s]状态变更: %s → %s", name, from, to)
		metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
	})

	// 领域层
	customerService := customer.NewService(customerRepo)
	productService := product.NewService(productRepo)

	// 应用层
	registerUseCase := appcustomer.NewRegisterUseCase(customerService)
	loginUseCase := appcustomer.NewLoginUseCase(customerService, jwtManager, sessionStore)
	logoutUseCase := appcustomer.NewLogoutUseCase(sessionStore)
	createProductUseCase := appproduct.NewCreateProductUseCase(productService)
	listProductsUseCase := appproduct.NewListProductsUseCase(productService)
	createOrderUseCase := apporder.NewCreateOrderUseCase(customerRepo, productRepo, orderRepo, txManager, publisher)
	getOrderUseCase := apporder.NewGetOrderUseCase(orderRepo, customerRepo, orderCache, cacheBreaker)

	// 接口层
	customerHandler := handler.NewCustomerHandler(registerUseCase, loginUseCase, logoutUseCase)
	productHandler := handler.NewProductHandler(createProductUseCase, listProductsUseCase)
	orderHandler := handler.NewOrderHandler(createOrderUseCase, getOrderUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 8. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())

	// 9. 注册路由
	registerRoutes(r, customerHandler, productHandler, orderHandler, authMiddleware)

	// 10. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   API文档: http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("   监控指标: http://localhost%s/metrics\n", addr)
	fmt.Printf("   客户注册: POST http://localhost%s/api/v1/customers\n", addr)
	fmt.Printf("   客户登录: POST http://localhost%s/api/v1/customers/login\n", addr)
	fmt.Printf("   创建订单: POST http://localhost%s/api/v1/orders (需要登录)\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	customerHandler *handler.CustomerHandler,
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标端点（Prometheus每15秒抓取）
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	// 访问 http://localhost:8080/swagger/index.html 查看API文档
	// 生产环境建议禁用或添加访问控制
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 客户模块（公开接口，不需要登录）
		customers := v1.Group("/customers")
		{
			customers.POST("", customerHandler.Register)    // 注册
			customers.POST("/login", customerHandler.Login) // 登录

			// 登出(需要登录)
			customers.POST("/logout", authMiddleware.RequireAuth(), customerHandler.Logout)
		}

		// 商品模块
		products := v1.Group("/products")
		{
			// 查询商品列表(公开接口,不需要登录)
			products.GET("", productHandler.ListProducts)

			// 上架商品(需要登录)
			products.POST("", authMiddleware.RequireAuth(), productHandler.CreateProduct)
		}

		// 订单模块（需要登录）
		orders := v1.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("/:id", orderHandler.GetOrder)
		}
	}
}
