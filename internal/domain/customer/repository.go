package customer

import (
	"context"
)

// Repository 客户仓储接口（客户目录）
// DDD设计说明：
// 1. 接口定义在domain层（依赖倒置原则）
// 2. 具体实现在infrastructure/persistence/mysql层
// 3. 下单流程只依赖FindByID：按ID解析客户是否存在
type Repository interface {
	// Create 创建客户
	// 注意：如果邮箱已存在，应返回errors.ErrEmailDuplicate
	Create(ctx context.Context, customer *Customer) error

	// FindByID 根据ID查找客户
	// 如果不存在，返回errors.ErrCustomerNotFound
	FindByID(ctx context.Context, id string) (*Customer, error)

	// FindByEmail 根据邮箱查找客户（登录用）
	// 如果不存在，返回errors.ErrCustomerNotFound
	FindByEmail(ctx context.Context, email string) (*Customer, error)
}
