package product

import (
	"context"

	apperrors "github.com/xiebiao/eshop/pkg/errors"
)

// Service 商品领域服务
// 设计说明:
// 1. 封装商品上架的业务规则校验（价格、库存范围）
// 2. 依赖Repository接口，不依赖具体实现
type Service interface {
	// CreateProduct 商品上架
	CreateProduct(ctx context.Context, name string, price int64, quantity int) (*Product, error)

	// ListProducts 分页查询商品列表
	ListProducts(ctx context.Context, params ListParams) ([]*Product, int64, error)
}

type service struct {
	repo Repository
}

// NewService 创建商品服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateProduct 商品上架
// 业务规则：
// 1. 名称1-200个字符
// 2. 价格必须大于0（单位：分）
// 3. 初始库存不能为负数
func (s *service) CreateProduct(ctx context.Context, name string, price int64, quantity int) (*Product, error) {
	if len(name) == 0 || len(name) > 200 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "商品名称长度应为1-200个字符")
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}
	if quantity < 0 {
		return nil, ErrInvalidStock
	}

	product := NewProduct(name, price, quantity)
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// ListProducts 分页查询商品列表
func (s *service) ListProducts(ctx context.Context, params ListParams) ([]*Product, int64, error) {
	return s.repo.List(ctx, params)
}
