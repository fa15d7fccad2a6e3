package mysql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xiebiao/eshop/internal/domain/customer"
	apperrors "github.com/xiebiao/eshop/pkg/errors"
)

// customerRepository 客户仓储实现（MySQL）
// 设计说明：
// 1. 实现domain/customer/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误（如邮箱重复），转换为业务错误
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建客户仓储
// 注意：返回的是domain层的接口类型，不是具体类型（依赖倒置）
func NewCustomerRepository(db *gorm.DB) customer.Repository {
	return &customerRepository{db: db}
}

// Create 创建客户
// 设计说明：
// 1. 主键UUID在仓储层生成（领域实体不关心ID如何产生）
// 2. 邮箱唯一性由数据库UNIQUE索引保证（而非应用层SELECT再INSERT）
// 3. 捕获MySQL的Duplicate Entry错误，转换为业务错误ErrEmailDuplicate
func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	// 1. 领域实体 → GORM模型
	model := &CustomerModel{
		ID:       uuid.NewString(),
		Name:     c.Name,
		Email:    c.Email,
		Password: c.Password,
	}

	// 2. 插入数据库
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		// MySQL错误码1062: Duplicate entry
		if isDuplicateError(err) {
			return customer.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建客户失败")
	}

	// 3. 回填生成的ID和时间戳
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找客户
// 如果不存在，返回ErrCustomerNotFound
func (r *customerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	var model CustomerModel
	err := r.getDB(ctx).Where("id = ?", id).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(err, "查询客户失败")
	}

	return toCustomerEntity(&model), nil
}

// FindByEmail 根据邮箱查找客户
// 邮箱字段有UNIQUE索引，查询效率高
func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	var model CustomerModel
	err := r.getDB(ctx).Where("email = ?", email).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(err, "查询客户失败")
	}

	return toCustomerEntity(&model), nil
}

// =========================================
// 辅助函数：模型转换
// =========================================

// toCustomerEntity GORM模型 → 领域实体
// 说明：这是Repository的重要职责之一，隔离infrastructure层与domain层
func toCustomerEntity(model *CustomerModel) *customer.Customer {
	return &customer.Customer{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Password:  model.Password,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *customerRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
