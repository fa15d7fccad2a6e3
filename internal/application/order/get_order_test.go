package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/eshop/internal/domain/order"
	infraredis "github.com/xiebiao/eshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/eshop/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/eshop/pkg/errors"
)

// fakeOrderCache 内存实现的订单缓存
type fakeOrderCache struct {
	data    map[string]*order.Order
	getErr  error
	setErr  error
	getHits int
	sets    int
}

func newFakeOrderCache() *fakeOrderCache {
	return &fakeOrderCache{data: make(map[string]*order.Order)}
}

func (c *fakeOrderCache) Get(ctx context.Context, orderID string) (*order.Order, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	o, ok := c.data[orderID]
	if !ok {
		return nil, infraredis.ErrCacheMiss
	}
	c.getHits++
	return o, nil
}

func (c *fakeOrderCache) Set(ctx context.Context, o *order.Order) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.sets++
	c.data[o.ID] = o
	return nil
}

// newGetOrderFixture 构造查询用例环境:先通过下单用例生成一笔c1的订单order-1
func newGetOrderFixture(t *testing.T) (*GetOrderUseCase, *fakeOrderRepo, *fakeOrderCache) {
	t.Helper()

	uc, _, _, orderRepo, _ := newFixture()
	_, err := uc.Execute(context.Background(), CreateOrderRequest{
		CustomerID: "c1",
		Items:      []CreateOrderItem{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	cache := newFakeOrderCache()
	getUC := NewGetOrderUseCase(orderRepo, uc.customerRepo, cache, nil)
	return getUC, orderRepo, cache
}

// TestGetOrder_CacheMissThenBackfill 测试缓存未命中时回源并写回
func TestGetOrder_CacheMissThenBackfill(t *testing.T) {
	uc, _, cache := newGetOrderFixture(t)

	resp, err := uc.Execute(context.Background(), GetOrderRequest{
		OrderID:    "order-1",
		CustomerID: "c1",
	})
	require.NoError(t, err)

	assert.Equal(t, "order-1", resp.OrderID)
	assert.Equal(t, "c1", resp.Customer.ID)
	assert.Equal(t, "张三", resp.Customer.Name)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "p1", resp.Items[0].ProductID)

	// 回源后写回了缓存
	assert.Equal(t, 1, cache.sets)

	// 第二次查询命中缓存
	_, err = uc.Execute(context.Background(), GetOrderRequest{
		OrderID:    "order-1",
		CustomerID: "c1",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.getHits)
}

// TestGetOrder_NotFound 测试订单不存在
func TestGetOrder_NotFound(t *testing.T) {
	uc, _, _ := newGetOrderFixture(t)

	_, err := uc.Execute(context.Background(), GetOrderRequest{
		OrderID:    "ghost",
		CustomerID: "c1",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

// TestGetOrder_Forbidden 测试查看他人订单被拒绝
func TestGetOrder_Forbidden(t *testing.T) {
	uc, _, _ := newGetOrderFixture(t)

	_, err := uc.Execute(context.Background(), GetOrderRequest{
		OrderID:    "order-1",
		CustomerID: "someone-else",
	})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeForbidden, appErr.Code)
}

// TestGetOrder_CacheFailureFallsBack 测试Redis故障时降级直查数据库
func TestGetOrder_CacheFailureFallsBack(t *testing.T) {
	uc, _, cache := newGetOrderFixture(t)
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")

	resp, err := uc.Execute(context.Background(), GetOrderRequest{
		OrderID:    "order-1",
		CustomerID: "c1",
	})
	require.NoError(t, err)
	assert.Equal(t, "order-1", resp.OrderID)
}

// TestGetOrder_BreakerOpensOnRepeatedFailure 测试连续Redis故障后熔断器打开
func TestGetOrder_BreakerOpensOnRepeatedFailure(t *testing.T) {
	uc, _, cache := newGetOrderFixture(t)
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")

	breaker := circuitbreaker.NewCircuitBreaker("order-cache", circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
	uc.breaker = breaker

	// 每次查询触发Get和Set两次失败,两轮后熔断器打开
	for i := 0; i < 3; i++ {
		_, err := uc.Execute(context.Background(), GetOrderRequest{
			OrderID:    "order-1",
			CustomerID: "c1",
		})
		// 缓存故障不影响查询结果
		require.NoError(t, err)
	}

	assert.Equal(t, circuitbreaker.StateOpen, breaker.State())

	// 熔断开启后依然可以正常查询(直查数据库)
	resp, err := uc.Execute(context.Background(), GetOrderRequest{
		OrderID:    "order-1",
		CustomerID: "c1",
	})
	require.NoError(t, err)
	assert.Equal(t, "order-1", resp.OrderID)
}

// TestGetOrder_NilCache 测试缓存关闭时直查数据库
func TestGetOrder_NilCache(t *testing.T) {
	uc, _, _ := newGetOrderFixture(t)
	uc.cache = nil

	resp, err := uc.Execute(context.Background(), GetOrderRequest{
		OrderID:    "order-1",
		CustomerID: "c1",
	})
	require.NoError(t, err)
	assert.Equal(t, "order-1", resp.OrderID)
}
