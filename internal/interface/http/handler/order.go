package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/eshop/internal/application/order"
	"github.com/xiebiao/eshop/internal/interface/http/dto"
	"github.com/xiebiao/eshop/internal/interface/http/middleware"
	"github.com/xiebiao/eshop/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	createOrderUseCase *apporder.CreateOrderUseCase
	getOrderUseCase    *apporder.GetOrderUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	createOrderUseCase *apporder.CreateOrderUseCase,
	getOrderUseCase *apporder.GetOrderUseCase,
) *OrderHandler {
	return &OrderHandler{
		createOrderUseCase: createOrderUseCase,
		getOrderUseCase:    getOrderUseCase,
	}
}

// CreateOrder 创建订单
// @Summary      创建订单
// @Description  客户下单购买商品（需要登录）。服务端校验买家和商品存在、库存充足，以目录当前价格生成价格快照并扣减库存，整个流程在一个数据库事务中完成
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "订单信息"
// @Success      200 {object} response.Response{data=dto.OrderResponse} "下单成功"
// @Failure      400 {object} response.Response "参数错误/商品不可购买/库存不足"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "客户不存在"
// @Router       /api/v1/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	// 2. 获取当前登录客户ID
	customerID := middleware.MustGetCustomerID(c)

	// 3. 转换为应用层DTO
	items := make([]apporder.CreateOrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = apporder.CreateOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	// 4. 调用应用层用例
	result, err := h.createOrderUseCase.Execute(c.Request.Context(), apporder.CreateOrderRequest{
		CustomerID: customerID,
		Items:      items,
	})

	if err != nil {
		response.Error(c, err)
		return
	}

	// 5. 构建HTTP响应
	response.Success(c, toOrderResponse(result))
}

// GetOrder 查询订单详情
// @Summary      查询订单详情
// @Description  查询订单（含明细和客户信息），只能查询本人的订单。优先读Redis缓存，缓存故障时熔断降级直查数据库
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "订单ID"
// @Success      200 {object} response.Response{data=dto.OrderResponse} "查询成功"
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "无权查看他人订单"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID := c.Param("id")
	customerID := middleware.MustGetCustomerID(c)

	result, err := h.getOrderUseCase.Execute(c.Request.Context(), apporder.GetOrderRequest{
		OrderID:    orderID,
		CustomerID: customerID,
	})

	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toOrderResponse(result))
}

// toOrderResponse 应用层DTO → HTTP层DTO
func toOrderResponse(result *apporder.CreateOrderResponse) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, len(result.Items))
	for i, item := range result.Items {
		items[i] = dto.OrderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	return &dto.OrderResponse{
		OrderID: result.OrderID,
		OrderNo: result.OrderNo,
		Customer: dto.OrderCustomer{
			ID:    result.Customer.ID,
			Name:  result.Customer.Name,
			Email: result.Customer.Email,
		},
		Items:     items,
		Total:     result.Total,
		TotalYuan: result.TotalYuan,
		Status:    result.Status,
		CreatedAt: result.CreatedAt,
	}
}
