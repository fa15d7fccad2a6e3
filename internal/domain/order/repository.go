package order

import (
	"context"
)

// Repository 订单仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 支持事务操作(通过context传递事务)
type Repository interface {
	// Create 创建订单(包含订单明细)
	// 订单和明细必须在同一事务中创建
	Create(ctx context.Context, order *Order) error

	// FindByID 根据ID查找订单(包含订单明细)
	// 如果不存在，返回ErrOrderNotFound
	FindByID(ctx context.Context, id string) (*Order, error)

	// FindByOrderNo 根据订单号查找订单
	FindByOrderNo(ctx context.Context, orderNo string) (*Order, error)

	// ListByCustomerID 查询客户的订单列表
	// 支持分页,避免一次性查询大量数据
	ListByCustomerID(ctx context.Context, customerID string, page, pageSize int) ([]*Order, int64, error)
}
