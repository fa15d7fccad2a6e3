package mysql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xiebiao/eshop/internal/domain/order"
	apperrors "github.com/xiebiao/eshop/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
// 设计说明:
// 1. Order和OrderItem是聚合关系,必须一起保存
// 2. 查询时使用Preload预加载明细,避免N+1问题
// 3. 事务通过context传递
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单
// 设计说明:
// 1. 订单和明细的UUID都在仓储层生成,明细的OrderID同步回填
// 2. GORM会自动保存关联的Items(通过foreignKey)
// 3. 必须在事务中调用(通过getDB从context获取事务DB)
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	// 1. 生成聚合内的主键
	o.ID = uuid.NewString()
	for i := range o.Items {
		o.Items[i].ID = uuid.NewString()
		o.Items[i].OrderID = o.ID
	}

	// 2. 领域实体 → GORM模型
	model := toOrderModel(o)

	// 3. 插入数据库(包含订单明细)
	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}

	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找订单
// 使用Preload预加载Items,避免N+1查询
func (r *orderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	var model OrderModel
	db := r.getDB(ctx)

	// Preload("Items")会执行:
	// 1. SELECT * FROM orders WHERE id = ?
	// 2. SELECT * FROM order_items WHERE order_id IN (?)
	err := db.Preload("Items").Where("id = ?", id).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}

	return toOrderEntity(&model), nil
}

// FindByOrderNo 根据订单号查找订单
func (r *orderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	var model OrderModel
	db := r.getDB(ctx)
	err := db.Preload("Items").Where("order_no = ?", orderNo).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}

	return toOrderEntity(&model), nil
}

// ListByCustomerID 查询客户的订单列表
func (r *orderRepository) ListByCustomerID(ctx context.Context, customerID string, page, pageSize int) ([]*order.Order, int64, error) {
	var models []OrderModel
	var total int64

	db := r.getDB(ctx)
	query := db.Model(&OrderModel{}).Where("customer_id = ?", customerID)

	// 查询总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	// 分页查询(包含明细)
	offset := (page - 1) * pageSize
	err := query.Preload("Items").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&models).Error

	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}

	return orders, total, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toOrderModel 领域实体 → GORM模型
func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemModel{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	return &OrderModel{
		ID:         o.ID,
		OrderNo:    o.OrderNo,
		CustomerID: o.CustomerID,
		Total:      o.Total,
		Status:     int(o.Status),
		Items:      items,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

// toOrderEntity GORM模型 → 领域实体
func toOrderEntity(model *OrderModel) *order.Order {
	items := make([]order.OrderItem, len(model.Items))
	for i, item := range model.Items {
		items[i] = order.OrderItem{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	return &order.Order{
		ID:         model.ID,
		OrderNo:    model.OrderNo,
		CustomerID: model.CustomerID,
		Total:      model.Total,
		Status:     order.OrderStatus(model.Status),
		Items:      items,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *orderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
