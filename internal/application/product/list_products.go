package product

import (
	"context"

	"github.com/xiebiao/eshop/internal/domain/product"
)

// ListProductsUseCase 商品列表查询用例
// 设计说明:
// 1. 支持分页、名称搜索、排序
// 2. 为迁移到ElasticSearch做准备(查询参数与领域层解耦)
type ListProductsUseCase struct {
	productService product.Service
}

// NewListProductsUseCase 创建列表查询用例
func NewListProductsUseCase(productService product.Service) *ListProductsUseCase {
	return &ListProductsUseCase{
		productService: productService,
	}
}

// ListProductsRequest 列表查询请求DTO
type ListProductsRequest struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词(商品名称)
	SortBy   string // 排序方式(price_asc, price_desc, created_at_desc)
}

// ProductListItem 列表项DTO
type ProductListItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"` // 价格(分)
	Quantity  int    `json:"quantity"`
	CreatedAt string `json:"created_at"`
}

// ListProductsResponse 列表查询响应DTO
type ListProductsResponse struct {
	List       []ProductListItem `json:"list"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// Execute 执行列表查询用例
// 参数默认值:page默认1,pageSize默认20,最大100
func (uc *ListProductsUseCase) Execute(ctx context.Context, req ListProductsRequest) (*ListProductsResponse, error) {
	// 参数默认值处理
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	products, total, err := uc.productService.ListProducts(ctx, product.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		SortBy:   req.SortBy,
	})
	if err != nil {
		return nil, err
	}

	list := make([]ProductListItem, len(products))
	for i, p := range products {
		list[i] = ProductListItem{
			ID:        p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  p.Quantity,
			CreatedAt: p.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	totalPages := int((total + int64(req.PageSize) - 1) / int64(req.PageSize))

	return &ListProductsResponse{
		List:       list,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}
