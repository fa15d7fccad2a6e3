package dto

import "fmt"

// CreateProductRequest HTTP商品上架请求
// validator tag说明:
// - required: 必填字段
// - min/max: 数值范围校验
type CreateProductRequest struct {
	Name     string `json:"name" binding:"required,max=200" example:"机械键盘"`
	Price    int64  `json:"price" binding:"required,min=1,max=99999999" example:"29900"` // 价格(分),299.00元
	Quantity int    `json:"quantity" binding:"min=0" example:"100"`
}

// ProductResponse HTTP商品响应
type ProductResponse struct {
	ID        string `json:"id" example:"9f1c2f4e-8d3a-4b6c-9e5f-7a8b9c0d1e2f"`
	Name      string `json:"name" example:"机械键盘"`
	Price     int64  `json:"price" example:"29900"`       // 价格(分)
	PriceYuan string `json:"price_yuan" example:"299.00"` // 价格(元),方便前端显示
	Quantity  int    `json:"quantity" example:"100"`
	CreatedAt string `json:"created_at" example:"2026-01-15 10:30:00"`
}

// ListProductsRequest HTTP商品列表请求
type ListProductsRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword  string `form:"keyword" binding:"omitempty,max=100" example:"键盘"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=price_asc price_desc created_at_desc" example:"created_at_desc"`
}

// ListProductsResponse HTTP商品列表响应
type ListProductsResponse struct {
	List  []ProductResponse `json:"list"`
	Total int64             `json:"total" example:"100"`
	Page  int               `json:"page" example:"1"`
	Size  int               `json:"size" example:"20"`
}

// FormatPriceYuan 格式化价格(分→元)
// 例如:29900分 → "299.00"
func FormatPriceYuan(priceFen int64) string {
	yuan := float64(priceFen) / 100.0
	return fmt.Sprintf("%.2f", yuan)
}
