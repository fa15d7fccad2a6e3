package mysql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xiebiao/eshop/internal/domain/product"
	apperrors "github.com/xiebiao/eshop/pkg/errors"
)

// productRepository 商品仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/product/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 下单流程依赖FindAllByIDs和UpdateQuantities,两者都支持事务传递
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) product.Repository {
	return &productRepository{db: db}
}

// Create 创建商品
func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	// 1. 领域实体 → GORM模型(主键UUID在仓储层生成)
	model := &ProductModel{
		ID:       uuid.NewString(),
		Name:     p.Name,
		Price:    p.Price,
		Quantity: p.Quantity,
	}

	// 2. 插入数据库
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建商品失败")
	}

	// 3. 回填生成的ID和时间戳
	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找商品
func (r *productRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	var model ProductModel
	err := r.getDB(ctx).Where("id = ?", id).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}

	return toProductEntity(&model), nil
}

// FindAllByIDs 按ID集合批量查找商品
// 设计说明:
// 1. 一次IN查询取回全部商品,避免逐个查询的N+1问题
// 2. 未知ID不报错,静默跳过(由调用方对比数量判断缺失)
// 3. 返回顺序不保证与ids一致
func (r *productRepository) FindAllByIDs(ctx context.Context, ids []string) ([]*product.Product, error) {
	if len(ids) == 0 {
		return []*product.Product{}, nil
	}

	var models []ProductModel
	err := r.getDB(ctx).Where("id IN ?", ids).Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "批量查询商品失败")
	}

	products := make([]*product.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}

	return products, nil
}

// UpdateQuantities 批量更新库存(覆盖写)
// 设计说明:
// 1. 必须在事务中调用(通过getDB从context获取事务DB)
// 2. 覆盖写语义:直接SET quantity = ?,新库存由调用方在校验后算出
// 3. 逐条UPDATE,数量通常很小(一笔订单的商品种类数)
func (r *productRepository) UpdateQuantities(ctx context.Context, updates []product.QuantityUpdate) error {
	db := r.getDB(ctx)

	for _, u := range updates {
		result := db.Model(&ProductModel{}).
			Where("id = ?", u.ID).
			Update("quantity", u.Quantity)

		if result.Error != nil {
			return apperrors.Wrap(result.Error, "更新库存失败")
		}

		if result.RowsAffected == 0 {
			return product.ErrProductNotFound
		}
	}

	return nil
}

// List 分页查询商品列表
func (r *productRepository) List(ctx context.Context, params product.ListParams) ([]*product.Product, int64, error) {
	var models []ProductModel
	var total int64

	query := r.getDB(ctx).Model(&ProductModel{})

	// 关键词搜索(商品名称)
	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("name LIKE ?", keyword)
	}

	// 查询总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品总数失败")
	}

	// 排序
	switch params.SortBy {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	case "created_at_desc":
		query = query.Order("created_at DESC")
	default:
		query = query.Order("created_at DESC") // 默认按创建时间降序
	}

	// 分页
	offset := (params.Page - 1) * params.PageSize
	query = query.Limit(params.PageSize).Offset(offset)

	if err := query.Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品列表失败")
	}

	products := make([]*product.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}

	return products, total, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toProductEntity GORM模型 → 领域实体
func toProductEntity(model *ProductModel) *product.Product {
	return &product.Product{
		ID:        model.ID,
		Name:      model.Name,
		Price:     model.Price,
		Quantity:  model.Quantity,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *productRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
