package order

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/eshop/internal/domain/customer"
	"github.com/xiebiao/eshop/internal/domain/order"
	"github.com/xiebiao/eshop/internal/domain/product"
	apperrors "github.com/xiebiao/eshop/pkg/errors"
	"github.com/xiebiao/eshop/pkg/metrics"
	"github.com/xiebiao/eshop/pkg/tracing"
)

// TxManager 事务管理器接口
// 设计说明:application层依赖接口而非mysql.TxManager具体类型,便于单元测试
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 订单事件发布接口
// 实现方:pkg/mq的Publisher(RabbitMQ)
type EventPublisher interface {
	Publish(routingKey string, message interface{}) error
}

// CreateOrderUseCase 创建订单用例
// 设计说明:这是整个项目最核心的用例
// 涉及:买家校验、商品目录校验、库存校验、价格快照、事务处理
type CreateOrderUseCase struct {
	customerRepo customer.Repository
	productRepo  product.Repository
	orderRepo    order.Repository
	txManager    TxManager
	publisher    EventPublisher // 可为nil(MQ关闭时)
}

// NewCreateOrderUseCase 创建下单用例
func NewCreateOrderUseCase(
	customerRepo customer.Repository,
	productRepo product.Repository,
	orderRepo order.Repository,
	txManager TxManager,
	publisher EventPublisher,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		txManager:    txManager,
		publisher:    publisher,
	}
}

// CreateOrderRequest 下单请求DTO
type CreateOrderRequest struct {
	CustomerID string            // 买家客户ID
	Items      []CreateOrderItem // 订单明细
}

// CreateOrderItem 订单明细项
type CreateOrderItem struct {
	ProductID string // 商品ID
	Quantity  int    // 购买数量
}

// CreateOrderResponse 下单响应DTO
// 设计说明:响应中嵌入完整客户信息(而非customer_id),前端无需二次查询
type CreateOrderResponse struct {
	OrderID   string          `json:"order_id"`
	OrderNo   string          `json:"order_no"`
	Customer  CustomerInfo    `json:"customer"`
	Items     []OrderItemInfo `json:"order_products"`
	Total     int64           `json:"total"`
	TotalYuan string          `json:"total_yuan"`
	Status    string          `json:"status"`
	CreatedAt string          `json:"created_at"`
}

// CustomerInfo 客户信息(不含密码)
type CustomerInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderItemInfo 订单明细响应项
type OrderItemInfo struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"` // 下单时单价快照(分)
}

// Execute 执行下单用例
// 核心流程(整体在一个事务中,要么全成功,要么全失败):
//
//  1. 校验买家存在
//  2. 按ID批量查询商品目录(一次IN查询,避免N+1)
//  3. 粗校验目录命中数,再逐项校验:商品存在于目录、库存充足
//  4. 以"目录中的当前价格"生成明细快照(防止改价攻击:前端传价不可信)
//  5. 持久化订单(含明细)
//  6. 计算并写回新库存(覆盖写:新库存 = 目录库存 - 购买数量)
//
// 注意:本流程不加行锁,并发下单同一商品时以先提交者为准,
// 后提交者基于过期快照计算的库存会覆盖前者(低并发场景下可接受)
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "application/order", "CreateOrder")
	defer span.End()

	start := time.Now()

	resp, err := uc.execute(ctx, req)
	if err != nil {
		metrics.IncCounterVec(metrics.OrdersFailedTotal, map[string]string{
			"reason": failureReason(err),
		})
		return nil, err
	}

	metrics.IncCounter(metrics.OrdersCreatedTotal)
	metrics.ObserveHistogram(metrics.OrderCreationDuration, time.Since(start).Seconds())
	span.SetAttributes(
		attribute.String("order.no", resp.OrderNo),
		attribute.Int64("order.total", resp.Total),
	)

	// 事务提交后发布订单创建事件(尽力而为,失败不影响下单结果)
	uc.publishCreated(resp)

	return resp, nil
}

func (uc *CreateOrderUseCase) execute(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	// 参数校验
	if len(req.Items) == 0 {
		return nil, order.ErrInvalidOrderItems
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, order.ErrInvalidQuantity
		}
	}

	var (
		result *order.Order
		buyer  *customer.Customer
	)

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// ========================================
		// 步骤1:校验买家存在
		// ========================================
		c, err := uc.customerRepo.FindByID(txCtx, req.CustomerID)
		if err != nil {
			return err // 不存在时为ErrCustomerNotFound
		}
		buyer = c

		// ========================================
		// 步骤2:批量查询商品目录
		// ========================================
		ids := make([]string, len(req.Items))
		for i, item := range req.Items {
			ids[i] = item.ProductID
		}

		found, err := uc.productRepo.FindAllByIDs(txCtx, ids)
		if err != nil {
			return err
		}

		// 建立ID索引(FindAllByIDs不保证返回顺序,未知ID会被静默跳过)
		catalog := make(map[string]*product.Product, len(found))
		for _, p := range found {
			catalog[p.ID] = p
		}

		// 粗校验:目录命中数少于请求的去重商品数,说明有商品不存在
		// (同一商品可出现在多条明细中,按去重后的ID数对比)
		distinct := make(map[string]struct{}, len(req.Items))
		for _, item := range req.Items {
			distinct[item.ProductID] = struct{}{}
		}
		if len(catalog) < len(distinct) {
			return product.ErrProductsUnavailable
		}

		// ========================================
		// 步骤3:逐项校验商品存在、库存充足
		// ========================================
		for _, item := range req.Items {
			p, ok := catalog[item.ProductID]
			if !ok {
				// 防御性兜底:粗校验通过后正常不可达
				return apperrors.Newf(apperrors.ErrCodeProductUnavailable,
					"商品%s不存在或已下架", item.ProductID)
			}

			if !p.HasStock(item.Quantity) {
				return apperrors.Newf(apperrors.ErrCodeInsufficientStock,
					"商品《%s》库存不足,当前库存:%d,需要:%d",
					p.Name, p.Quantity, item.Quantity)
			}
		}

		// ========================================
		// 步骤4:生成明细快照(价格以目录为准)
		// ========================================
		var total int64
		orderItems := make([]order.OrderItem, len(req.Items))
		for i, item := range req.Items {
			p := catalog[item.ProductID]
			orderItems[i] = order.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     p.Price, // 使用数据库中的当前价格
			}
			total += p.Price * int64(item.Quantity)
		}

		// ========================================
		// 步骤5:创建订单(含明细)
		// ========================================
		orderNo := order.GenerateOrderNo()
		newOrder := order.NewOrder(orderNo, buyer.ID, orderItems, total)

		if err := uc.orderRepo.Create(txCtx, newOrder); err != nil {
			return err
		}

		// ========================================
		// 步骤6:扣减库存(覆盖写)
		// ========================================
		// 以已创建订单的明细为准重新计算,目录中找不到时库存按0计算
		// (防御性分支,前面已校验过,正常流程不可达)
		updates := make([]product.QuantityUpdate, len(newOrder.Items))
		var deducted int
		for i, item := range newOrder.Items {
			current := 0
			if p, ok := catalog[item.ProductID]; ok {
				current = p.Quantity
			}
			updates[i] = product.QuantityUpdate{
				ID:       item.ProductID,
				Quantity: current - item.Quantity,
			}
			deducted += item.Quantity
		}

		if err := uc.productRepo.UpdateQuantities(txCtx, updates); err != nil {
			return err // 扣减失败整个事务回滚,订单不会创建
		}

		metrics.AddCounter(metrics.StockDeductedTotal, float64(deducted))

		result = newOrder
		return nil
	})

	if err != nil {
		return nil, err
	}

	return toCreateOrderResponse(result, buyer), nil
}

// publishCreated 发布order.created事件
// MQ不可用时只记录日志,不影响下单主流程
func (uc *CreateOrderUseCase) publishCreated(resp *CreateOrderResponse) {
	if uc.publisher == nil {
		return
	}

	event := map[string]interface{}{
		"order_id":    resp.OrderID,
		"order_no":    resp.OrderNo,
		"customer_id": resp.Customer.ID,
		"total":       resp.Total,
		"created_at":  resp.CreatedAt,
	}

	if err := uc.publisher.Publish("order.created", event); err != nil {
		log.Printf("发布订单创建事件失败: %v", err)
	}
}

// failureReason 将下单错误映射为监控指标的失败原因标签
func failureReason(err error) string {
	appErr := apperrors.GetAppError(err)
	switch appErr.Code {
	case apperrors.ErrCodeCustomerNotFound:
		return "customer_not_found"
	case apperrors.ErrCodeProductsUnavailable, apperrors.ErrCodeProductUnavailable:
		return "product_unavailable"
	case apperrors.ErrCodeInsufficientStock:
		return "insufficient_stock"
	case apperrors.ErrCodeInvalidParams:
		return "invalid_params"
	default:
		return "internal"
	}
}

// formatPrice 格式化价格(分→元)
func formatPrice(priceFen int64) string {
	yuan := float64(priceFen) / 100.0
	return fmt.Sprintf("%.2f", yuan)
}

// toCreateOrderResponse 领域实体 → 应用层DTO
func toCreateOrderResponse(o *order.Order, c *customer.Customer) *CreateOrderResponse {
	items := make([]OrderItemInfo, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemInfo{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	return &CreateOrderResponse{
		OrderID: o.ID,
		OrderNo: o.OrderNo,
		Customer: CustomerInfo{
			ID:    c.ID,
			Name:  c.Name,
			Email: c.Email,
		},
		Items:     items,
		Total:     o.Total,
		TotalYuan: formatPrice(o.Total),
		Status:    o.Status.String(),
		CreatedAt: o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
