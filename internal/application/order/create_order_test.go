package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/eshop/internal/domain/customer"
	"github.com/xiebiao/eshop/internal/domain/order"
	"github.com/xiebiao/eshop/internal/domain/product"
	apperrors "github.com/xiebiao/eshop/pkg/errors"
)

// =========================================
// 测试替身:内存实现的仓储和事务管理器
// =========================================

type fakeCustomerRepo struct {
	customers map[string]*customer.Customer
	findCalls int
}

func (r *fakeCustomerRepo) Create(ctx context.Context, c *customer.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	r.findCalls++
	c, ok := r.customers[id]
	if !ok {
		return nil, customer.ErrCustomerNotFound
	}
	return c, nil
}

func (r *fakeCustomerRepo) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	for _, c := range r.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, customer.ErrCustomerNotFound
}

type fakeProductRepo struct {
	products    map[string]*product.Product
	findCalls   int
	updateCalls [][]product.QuantityUpdate
	createErr   error
}

func (r *fakeProductRepo) Create(ctx context.Context, p *product.Product) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) FindByID(ctx context.Context, id string) (*product.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) FindAllByIDs(ctx context.Context, ids []string) ([]*product.Product, error) {
	r.findCalls++
	found := make([]*product.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			cp := *p
			found = append(found, &cp)
		}
	}
	return found, nil
}

func (r *fakeProductRepo) UpdateQuantities(ctx context.Context, updates []product.QuantityUpdate) error {
	r.updateCalls = append(r.updateCalls, updates)
	for _, u := range updates {
		if p, ok := r.products[u.ID]; ok {
			p.Quantity = u.Quantity
		}
	}
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, params product.ListParams) ([]*product.Product, int64, error) {
	return nil, 0, nil
}

type fakeOrderRepo struct {
	created   []*order.Order
	createErr error
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *order.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	o.ID = "order-1"
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	r.created = append(r.created, o)
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id string) (*order.Order, error) {
	for _, o := range r.created {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

func (r *fakeOrderRepo) FindByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	for _, o := range r.created {
		if o.OrderNo == orderNo {
			return o, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

func (r *fakeOrderRepo) ListByCustomerID(ctx context.Context, customerID string, page, pageSize int) ([]*order.Order, int64, error) {
	return nil, 0, nil
}

// fakeTxManager 直接执行回调,不做真实事务
type fakeTxManager struct{}

func (m *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePublisher struct {
	routingKeys []string
	messages    []interface{}
	err         error
}

func (p *fakePublisher) Publish(routingKey string, message interface{}) error {
	if p.err != nil {
		return p.err
	}
	p.routingKeys = append(p.routingKeys, routingKey)
	p.messages = append(p.messages, message)
	return nil
}

// newFixture 构造测试环境:一个客户c1,商品p1(库存10,单价500分)、p2(库存2,单价300分)
func newFixture() (*CreateOrderUseCase, *fakeCustomerRepo, *fakeProductRepo, *fakeOrderRepo, *fakePublisher) {
	customerRepo := &fakeCustomerRepo{customers: map[string]*customer.Customer{
		"c1": {ID: "c1", Name: "张三", Email: "zhangsan@example.com", Password: "hashed"},
	}}
	productRepo := &fakeProductRepo{products: map[string]*product.Product{
		"p1": {ID: "p1", Name: "机械键盘", Price: 500, Quantity: 10},
		"p2": {ID: "p2", Name: "鼠标垫", Price: 300, Quantity: 2},
	}}
	orderRepo := &fakeOrderRepo{}
	publisher := &fakePublisher{}

	uc := NewCreateOrderUseCase(customerRepo, productRepo, orderRepo, &fakeTxManager{}, publisher)
	return uc, customerRepo, productRepo, orderRepo, publisher
}

// =========================================
// 用例测试
// =========================================

// TestCreateOrder_Success 测试正常下单流程
func TestCreateOrder_Success(t *testing.T) {
	uc, _, productRepo, orderRepo, publisher := newFixture()

	resp, err := uc.Execute(context.Background(), CreateOrderRequest{
		CustomerID: "c1",
		Items: []CreateOrderItem{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p2", Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	// 订单总额 = 3×500 + 2×300 = 2100分
	assert.Equal(t, int64(2100), resp.Total)
	assert.Equal(t, "21.00", resp.TotalYuan)
	assert.Equal(t, "待支付", resp.Status)
	assert.NotEmpty(t, resp.OrderNo)

	// 响应嵌入完整客户信息(不是customer_id)
	assert.Equal(t, "c1", resp.Customer.ID)
	assert.Equal(t, "张三", resp.Customer.Name)
	assert.Equal(t, "zhangsan@example.com", resp.Customer.Email)

	// 明细保持请求顺序,价格为下单时的目录价快照
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "p1", resp.Items[0].ProductID)
	assert.Equal(t, 3, resp.Items[0].Quantity)
	assert.Equal(t, int64(500), resp.Items[0].Price)
	assert.Equal(t, "p2", resp.Items[1].ProductID)
	assert.Equal(t, 2, resp.Items[1].Quantity)
	assert.Equal(t, int64(300), resp.Items[1].Price)

	// 订单已持久化
	require.Len(t, orderRepo.created, 1)
	assert.Equal(t, int64(2100), orderRepo.created[0].Total)

	// 库存扣减:p1 10-3=7, p2 2-2=0
	require.Len(t, productRepo.updateCalls, 1)
	assert.Equal(t, []product.QuantityUpdate{
		{ID: "p1", Quantity: 7},
		{ID: "p2", Quantity: 0},
	}, productRepo.updateCalls[0])
	assert.Equal(t, 7, productRepo.products["p1"].Quantity)
	assert.Equal(t, 0, productRepo.products["p2"].Quantity)

	// 发布了order.created事件
	require.Len(t, publisher.routingKeys, 1)
	assert.Equal(t, "order.created", publisher.routingKeys[0])
}

// TestCreateOrder_CustomerNotFound 测试买家不存在
func TestCreateOrder_CustomerNotFound(t *testing.T) {
	uc, _, productRepo, orderRepo, _ := newFixture()

	_, err := uc.Execute(context.Background(), CreateOrderRequest{
		CustomerID: "ghost",
		Items:      []CreateOrderItem{{ProductID: "p1", Quantity: 1}},
	})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeCustomerNotFound, appErr.Code)

	// 买家校验失败后不应访问商品目录、不应创建订单
	assert.Equal(t, 0, productRepo.findCalls)
	assert.Empty(t, orderRepo.created)
	assert.Empty(t, productRepo.updateCalls)
}

// TestCreateOrder_AllProductsUnknown 测试请求中的商品ID全部无效
func TestCreateOrder_AllProductsUnknown(t *testing.T) {
	uc, _, productRepo, orderRepo, _ := newFixture()

	_, err := uc.Execute(context.Background(), CreateOrderRequest{
		CustomerID: "c1",
		Items: []CreateOrderItem{
			{ProductID: "nope-1", Quantity: 1},
			{ProductID: "nope-2", Quantity: 1},
		},
	})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeProductsUnavailable, appErr.Code)

	assert.Empty(t, orderRepo.created)
	assert.Empty(t, productRepo.updateCalls)
}

// TestCreateOrder_SomeProductUnknown 测试部分商品ID无效(粗校验按去重数量对比)
func TestCreateOrder_SomeProductUnknown(t *testing.T) {
	uc, _, productRepo, orderRepo, _ := newFixture()

	_, err := uc.Execute(context.Background(), CreateOrderRequest{
		CustomerID: "c1",
		Items: []CreateOrderItem{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "nope", Quantity: 1},
		},
	})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeProductsUnavailable, appErr.Code)

	assert.Empty(t, orderRepo.created)
	assert.Empty(t, productRepo.updateCalls)
}

// TestCreateOrder_DuplicateProductLines 测试同一商品多条明细时粗校验不误报
func TestCreateOrder_DuplicateProductLines(t *testing.T) {
	uc, _, productRepo, _, _ := newFixture()

	// p1出现两次:目录只命中1个商品,但去重后请求也只有1个商品
	resp, err := uc.Execute(context.Background(), CreateOrderRequest{
		CustomerID: "c1",
		Items: []CreateOrderItem{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p1", Quantity: 3},
		},
	})
	require.NoError(t, err)

	// 明细保持请求的条数和顺序
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, 3, resp.Items[1].Quantity)
	assert.Equal(t, int64(2500), resp.Total)

	require.Len(t, productRepo.updateCalls, 1)
}

// TestCreateOrder_InsufficientStock 测试库存不足(错误信息包含商品名称)
func TestCreateOrder_InsufficientStock(t *testing.T) {
	uc, _, productRepo, orderRepo, _ := newFixture()

	// p2库存只有2个,购买5个
	_, err := uc.Execute(context.Background(), CreateOrderRequest{
		CustomerID: "c1",
		Items: []CreateOrderItem{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p2", Quantity: 5},
		},
	})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeInsufficientStock, appErr.Code)
	assert.Contains(t, appErr.Message, "鼠标垫")

	// 整单失败:订单未创建,任何商品的库存都不变
	assert.Empty(t, orderRepo.created)
	assert.Empty(t, productRepo.updateCalls)
	assert.Equal(t, 10, productRepo.products["p1"].Quantity)
	assert.Equal(t, 2, productRepo.products["p2"].Quantity)
}

// TestCreateOrder_ExactStock 测试购买数量恰好等于库存(允许清零)
func TestCreateOrder_ExactStock(t *testing.T) {
	uc, _, productRepo, _, _ := newFixture()

	resp, err := uc.Execute(context.Background(), CreateOrderRequest{
		CustomerID: "c1",
		Items:      []CreateOrderItem{{ProductID: "p2", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(600), resp.Total)
	assert.Equal(t, 0, productRepo.products["p2"].Quantity)
}

// TestCreateOrder_EmptyItems 测试空明细
func TestCreateOrder_EmptyItems(t *testing.T) {
	uc, customerRepo, _, _, _ := newFixture()

	_, err := uc.Execute(context.Background(), CreateOrderRequest{
		CustomerID: "c1",
		Items:      []CreateOrderItem{},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrInvalidOrderItems)

	// 参数校验在任何仓储访问之前
	assert.Equal(t, 0, customerRepo.findCalls)
}

// TestCreateOrder_InvalidQuantity 测试非法购买数量
func TestCreateOrder_InvalidQuantity(t *testing.T) {
	uc, _, _, orderRepo, _ := newFixture()

	for _, qty := range []int{0, -1} {
		_, err := uc.Execute(context.Background(), CreateOrderRequest{
			CustomerID: "c1",
			Items:      []CreateOrderItem{{ProductID: "p1", Quantity: qty}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidQuantity)
	}

	assert.Empty(t, orderRepo.created)
}

// TestCreateOrder_PersistFailureRollsBack 测试订单持久化失败时不扣库存
func TestCreateOrder_PersistFailureRollsBack(t *testing.T) {
	uc, _, productRepo, orderRepo, publisher := newFixture()
	orderRepo.createErr = errors.New("db gone")

	_, err := uc.Execute(context.Background(), CreateOrderRequest{
		CustomerID: "c1",
		Items:      []CreateOrderItem{{ProductID: "p1", Quantity: 1}},
	})
	require.Error(t, err)

	// 创建失败后不应执行库存更新,也不应发布事件
	assert.Empty(t, productRepo.updateCalls)
	assert.Empty(t, publisher.routingKeys)
}

// TestCreateOrder_PublishFailureDoesNotFailOrder 测试事件发布失败不影响下单结果
func TestCreateOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	uc, _, _, orderRepo, publisher := newFixture()
	publisher.err = errors.New("mq down")

	resp, err := uc.Execute(context.Background(), CreateOrderRequest{
		CustomerID: "c1",
		Items:      []CreateOrderItem{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Len(t, orderRepo.created, 1)
}

// TestCreateOrder_NilPublisher 测试MQ关闭时(publisher为nil)下单正常
func TestCreateOrder_NilPublisher(t *testing.T) {
	uc, _, _, _, _ := newFixture()
	uc.publisher = nil

	resp, err := uc.Execute(context.Background(), CreateOrderRequest{
		CustomerID: "c1",
		Items:      []CreateOrderItem{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.NotNil(t, resp)
}
