package product

import (
	"time"
)

// Product 商品实体（聚合根）
// DDD设计说明:
// 1. Product是商品聚合的根实体，Quantity是可售库存
// 2. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 3. ID使用UUID字符串（由仓储层在创建时生成）
// 4. 下单流程中Quantity是唯一会被修改的字段
type Product struct {
	ID        string
	Name      string // 商品名称
	Price     int64  // 价格(单位:分,1元=100分)
	Quantity  int    // 可售库存数量
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProduct 创建新商品(工厂方法)
// price必须>0，quantity不能为负（由领域服务校验后调用）
func NewProduct(name string, price int64, quantity int) *Product {
	now := time.Now()
	return &Product{
		Name:      name,
		Price:     price,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasStock 判断库存是否满足购买数量
func (p *Product) HasStock(quantity int) bool {
	return p.Quantity >= quantity
}
