package order

import (
	"context"
	"errors"
	"log"

	"github.com/xiebiao/eshop/internal/domain/customer"
	"github.com/xiebiao/eshop/internal/domain/order"
	infraredis "github.com/xiebiao/eshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/eshop/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/eshop/pkg/errors"
	"github.com/xiebiao/eshop/pkg/metrics"
)

// OrderCache 订单缓存接口
// 实现方:internal/infrastructure/persistence/redis的OrderCache
type OrderCache interface {
	Get(ctx context.Context, orderID string) (*order.Order, error)
	Set(ctx context.Context, o *order.Order) error
}

// GetOrderUseCase 查询订单用例
// 设计说明:
// 1. 先查Redis缓存,未命中回源MySQL,回源后写回缓存
// 2. 缓存访问经过熔断器:Redis故障时快速失败,直查MySQL
// 3. 响应嵌入完整客户信息,与下单响应保持同构
type GetOrderUseCase struct {
	orderRepo    order.Repository
	customerRepo customer.Repository
	cache        OrderCache                     // 可为nil(缓存关闭时)
	breaker      *circuitbreaker.CircuitBreaker // 可为nil
}

// NewGetOrderUseCase 创建查询订单用例
func NewGetOrderUseCase(
	orderRepo order.Repository,
	customerRepo customer.Repository,
	cache OrderCache,
	breaker *circuitbreaker.CircuitBreaker,
) *GetOrderUseCase {
	return &GetOrderUseCase{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		cache:        cache,
		breaker:      breaker,
	}
}

// GetOrderRequest 查询订单请求
type GetOrderRequest struct {
	OrderID    string
	CustomerID string // 请求方客户ID(从JWT中提取),用于归属校验
}

// Execute 执行查询
func (uc *GetOrderUseCase) Execute(ctx context.Context, req GetOrderRequest) (*CreateOrderResponse, error) {
	// 1. 尝试读缓存(经过熔断器)
	o := uc.fromCache(ctx, req.OrderID)

	// 2. 未命中回源数据库
	if o == nil {
		var err error
		o, err = uc.orderRepo.FindByID(ctx, req.OrderID)
		if err != nil {
			return nil, err
		}

		// 回源成功后写回缓存(尽力而为)
		uc.toCache(ctx, o)
	}

	// 3. 归属校验:不能查看他人订单
	if !o.IsOwnedBy(req.CustomerID) {
		return nil, apperrors.ErrForbidden
	}

	// 4. 嵌入客户信息
	buyer, err := uc.customerRepo.FindByID(ctx, o.CustomerID)
	if err != nil {
		return nil, err
	}

	return toCreateOrderResponse(o, buyer), nil
}

// fromCache 读缓存,任何失败(未命中/Redis故障/熔断开启)都返回nil回源
func (uc *GetOrderUseCase) fromCache(ctx context.Context, orderID string) *order.Order {
	if uc.cache == nil {
		return nil
	}

	var cached *order.Order
	op := func() error {
		o, err := uc.cache.Get(ctx, orderID)
		if err != nil {
			if errors.Is(err, infraredis.ErrCacheMiss) {
				// 未命中不算Redis故障,不触发熔断
				return nil
			}
			return err
		}
		cached = o
		return nil
	}

	var err error
	if uc.breaker != nil {
		err = uc.breaker.Execute(op)
	} else {
		err = op()
	}

	switch {
	case err != nil:
		// Redis故障或熔断开启,降级直查MySQL
		metrics.IncCounterVec(metrics.CacheRequestsTotal, map[string]string{"result": "error"})
		return nil
	case cached == nil:
		metrics.IncCounterVec(metrics.CacheRequestsTotal, map[string]string{"result": "miss"})
		return nil
	default:
		metrics.IncCounterVec(metrics.CacheRequestsTotal, map[string]string{"result": "hit"})
		return cached
	}
}

// toCache 写缓存,失败只记录日志
func (uc *GetOrderUseCase) toCache(ctx context.Context, o *order.Order) {
	if uc.cache == nil {
		return
	}

	op := func() error {
		return uc.cache.Set(ctx, o)
	}

	var err error
	if uc.breaker != nil {
		err = uc.breaker.Execute(op)
	} else {
		err = op()
	}

	if err != nil {
		log.Printf("写入订单缓存失败: %v", err)
	}
}
