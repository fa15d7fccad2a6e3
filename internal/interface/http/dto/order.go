package dto

// CreateOrderRequest HTTP下单请求
// 买家身份从JWT中提取,请求体只携带商品明细
type CreateOrderRequest struct {
	Items []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateOrderItemRequest 订单明细项
// 价格不由前端传递:下单金额以服务端商品目录的当前价格为准
type CreateOrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid" example:"9f1c2f4e-8d3a-4b6c-9e5f-7a8b9c0d1e2f"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=999" example:"2"`
}

// OrderCustomer 订单中嵌入的客户信息
type OrderCustomer struct {
	ID    string `json:"id" example:"3b9e0b48-5a7e-4f4b-b7c8-0d3f6b1a2c9d"`
	Name  string `json:"name" example:"张三"`
	Email string `json:"email" example:"zhangsan@example.com"`
}

// OrderItemResponse 订单明细响应项
type OrderItemResponse struct {
	ProductID string `json:"product_id" example:"9f1c2f4e-8d3a-4b6c-9e5f-7a8b9c0d1e2f"`
	Quantity  int    `json:"quantity" example:"2"`
	Price     int64  `json:"price" example:"29900"` // 下单时单价快照(分)
}

// OrderResponse HTTP订单响应
// 说明:嵌入完整客户信息(而非customer_id),下单和查单共用
type OrderResponse struct {
	OrderID   string              `json:"order_id" example:"c4f7a2b1-6e8d-4a3c-b5f9-1d2e3f4a5b6c"`
	OrderNo   string              `json:"order_no" example:"ORD1699248000123456"`
	Customer  OrderCustomer       `json:"customer"`
	Items     []OrderItemResponse `json:"order_products"`
	Total     int64               `json:"total" example:"59800"`
	TotalYuan string              `json:"total_yuan" example:"598.00"`
	Status    string              `json:"status" example:"待支付"`
	CreatedAt string              `json:"created_at" example:"2026-01-15 10:30:00"`
}
