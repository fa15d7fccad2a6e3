package product

import (
	"context"
)

// QuantityUpdate 库存批量更新项
// 语义：把商品id的库存设置为quantity（覆盖写，不是增量）
type QuantityUpdate struct {
	ID       string
	Quantity int
}

// Repository 商品仓储接口（商品目录）
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 下单流程依赖FindAllByIDs（批量查询）和UpdateQuantities（批量更新）
// 3. 批量查询一次IN查询取回全部商品,避免逐个查询的N+1问题
type Repository interface {
	// Create 创建商品
	Create(ctx context.Context, product *Product) error

	// FindByID 根据ID查找商品
	// 如果不存在，返回errors.ErrProductNotFound
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindAllByIDs 按ID集合批量查找商品
	// 注意：未知ID会被静默跳过，返回数量可能少于请求数量；
	// 返回顺序不保证与ids一致，调用方需要自行按ID索引
	FindAllByIDs(ctx context.Context, ids []string) ([]*Product, error)

	// UpdateQuantities 批量更新库存（覆盖写）
	// 必须在事务中调用（通过context传递事务）
	UpdateQuantities(ctx context.Context, updates []QuantityUpdate) error

	// List 分页查询商品列表
	List(ctx context.Context, params ListParams) ([]*Product, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词(商品名称)
	SortBy   string // 排序字段(price_asc, price_desc, created_at_desc)
}
