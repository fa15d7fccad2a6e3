package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/eshop/internal/domain/order"
	apperrors "github.com/xiebiao/eshop/pkg/errors"
)

// ErrCacheMiss 缓存未命中
// 调用方据此回源数据库,不应作为业务错误返回给客户端
var ErrCacheMiss = errors.New("cache miss")

// OrderCache 订单缓存
// 设计说明：
// 1. 订单创建后基本不变(状态除外),适合缓存
// 2. Key设计：order:{order_id}
// 3. 使用JSON序列化(可读性好,便于排查问题)
// 4. 缓存故障不应影响主流程,调用方配合熔断器降级直查MySQL
type OrderCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOrderCache 创建订单缓存
func NewOrderCache(client *redis.Client, ttl time.Duration) *OrderCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute // 默认缓存10分钟
	}
	return &OrderCache{client: client, ttl: ttl}
}

// Get 获取缓存的订单
// 未命中返回ErrCacheMiss,其他错误为Redis故障
func (c *OrderCache) Get(ctx context.Context, orderID string) (*order.Order, error) {
	key := fmt.Sprintf("order:%s", orderID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, apperrors.Wrap(err, "读取订单缓存失败")
	}

	var o order.Order
	if err := json.Unmarshal(data, &o); err != nil {
		// 缓存数据损坏,当作未命中处理(回源后会覆盖)
		return nil, ErrCacheMiss
	}

	return &o, nil
}

// Set 写入订单缓存
func (c *OrderCache) Set(ctx context.Context, o *order.Order) error {
	key := fmt.Sprintf("order:%s", o.ID)

	data, err := json.Marshal(o)
	if err != nil {
		return apperrors.Wrap(err, "序列化订单失败")
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "写入订单缓存失败")
	}

	return nil
}

// Delete 删除订单缓存(订单状态变更后调用)
func (c *OrderCache) Delete(ctx context.Context, orderID string) error {
	key := fmt.Sprintf("order:%s", orderID)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		return apperrors.Wrap(err, "删除订单缓存失败")
	}

	return nil
}
