package product

import (
	"context"

	"github.com/xiebiao/eshop/internal/domain/product"
)

// CreateProductUseCase 商品上架用例
type CreateProductUseCase struct {
	productService product.Service
}

// NewCreateProductUseCase 创建商品上架用例
func NewCreateProductUseCase(productService product.Service) *CreateProductUseCase {
	return &CreateProductUseCase{
		productService: productService,
	}
}

// CreateProductRequest 商品上架请求DTO
type CreateProductRequest struct {
	Name     string // 商品名称
	Price    int64  // 价格(分)
	Quantity int    // 初始库存
}

// CreateProductResponse 商品上架响应DTO
type CreateProductResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"` // 价格(分)
	Quantity  int    `json:"quantity"`
	CreatedAt string `json:"created_at"`
}

// Execute 执行商品上架
func (uc *CreateProductUseCase) Execute(ctx context.Context, req CreateProductRequest) (*CreateProductResponse, error) {
	p, err := uc.productService.CreateProduct(ctx, req.Name, req.Price, req.Quantity)
	if err != nil {
		return nil, err
	}

	return &CreateProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  p.Quantity,
		CreatedAt: p.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}
