//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 设计说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入不同，Wire在编译期生成代码
// 3. 优势：零运行时开销、类型安全、编译期检测循环依赖
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

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
)

// ========================================
// Wire Provider Sets (依赖分组)
// ========================================

// infrastructureSet 基础设施层依赖
// 包含：配置加载、数据库连接、Redis连接
var infrastructureSet = wire.NewSet(
	config.Load,     // 加载配置文件
	mysql.NewDB,     // 创建MySQL连接
	redis.NewClient, // 创建Redis连接
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewCustomerRepository, // 客户仓储
	mysql.NewProductRepository,  // 商品仓储
	mysql.NewOrderRepository,    // 订单仓储
	provideTxManager,            // 事务管理器(绑定到application层接口)
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	customer.NewService, // 客户领域服务
	product.NewService,  // 商品领域服务
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appcustomer.NewRegisterUseCase,     // 客户注册用例
	appcustomer.NewLoginUseCase,        // 客户登录用例
	appcustomer.NewLogoutUseCase,       // 客户登出用例
	appproduct.NewCreateProductUseCase, // 商品上架用例
	appproduct.NewListProductsUseCase,  // 商品列表用例
	apporder.NewCreateOrderUseCase,     // 创建订单用例
	apporder.NewGetOrderUseCase,        // 查询订单用例
	provideEventPublisher,              // 订单事件发布器
	provideOrderCache,                  // 订单缓存
	provideCacheBreaker,                // 缓存熔断器
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,            // JWT管理器（需要从config提取参数）
	provideSessionStore,          // Session存储
	middleware.NewAuthMiddleware, // 认证中间件
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewCustomerHandler, // 客户处理器
	handler.NewProductHandler,  // 商品处理器
	handler.NewOrderHandler,    // 订单处理器
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================
// 有些依赖的构造函数参数不是直接的类型，需要从Config中提取，
// 或者需要绑定到application层定义的接口类型

// provideTxManager 事务管理器(以application层接口类型提供)
func provideTxManager(db *gorm.DB) apporder.TxManager {
	return mysql.NewTxManager(db)
}

// provideEventPublisher 订单事件发布器
// MQ关闭时返回nil,下单用例会跳过事件发布
func provideEventPublisher(cfg *config.Config) (apporder.EventPublisher, error) {
	if !cfg.MQ.Enabled {
		return nil, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
}

// provideOrderCache 订单缓存(以application层接口类型提供)
func provideOrderCache(client *goredis.Client) apporder.OrderCache {
	return redis.NewOrderCache(client, 10*time.Minute)
}

// provideCacheBreaker 订单缓存熔断器
func provideCacheBreaker() *circuitbreaker.CircuitBreaker {
	cb := circuitbreaker.NewCircuitBreaker("order-cache", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	cb.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
	})
	return cb
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建Session存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideGinEngine 创建并配置Gin引擎
// 路由注册与main.go的registerRoutes保持一致
func provideGinEngine(
	cfg *config.Config,
	customerHandler *handler.CustomerHandler,
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())

	registerRoutes(r, customerHandler, productHandler, orderHandler, authMiddleware)

	return r
}

// ========================================
// Wire Injector (依赖注入器)
// ========================================

// InitializeApp 初始化整个应用
// wire.Build 的参数是所有的 Provider，
// Wire会在编译期分析依赖关系，在wire_gen.go中生成实际的初始化代码
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)

	// 返回值是占位符，实际运行时会被wire_gen.go替代
	return nil, nil
}
