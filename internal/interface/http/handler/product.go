package handler

import (
	"github.com/gin-gonic/gin"

	appproduct "github.com/xiebiao/eshop/internal/application/product"
	"github.com/xiebiao/eshop/internal/interface/http/dto"
	"github.com/xiebiao/eshop/pkg/response"
)

// ProductHandler 商品HTTP处理器
type ProductHandler struct {
	createProductUseCase *appproduct.CreateProductUseCase
	listProductsUseCase  *appproduct.ListProductsUseCase
}

// NewProductHandler 创建商品处理器
func NewProductHandler(
	createProductUseCase *appproduct.CreateProductUseCase,
	listProductsUseCase *appproduct.ListProductsUseCase,
) *ProductHandler {
	return &ProductHandler{
		createProductUseCase: createProductUseCase,
		listProductsUseCase:  listProductsUseCase,
	}
}

// CreateProduct 商品上架
// @Summary      商品上架
// @Description  创建新商品并设置初始库存（需要登录）
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateProductRequest true "商品信息"
// @Success      200 {object} response.Response{data=dto.ProductResponse} "上架成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.createProductUseCase.Execute(c.Request.Context(), appproduct.CreateProductRequest{
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
	})

	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.ProductResponse{
		ID:        result.ID,
		Name:      result.Name,
		Price:     result.Price,
		PriceYuan: dto.FormatPriceYuan(result.Price),
		Quantity:  result.Quantity,
		CreatedAt: result.CreatedAt,
	})
}

// ListProducts 商品列表
// @Summary      商品列表
// @Description  分页查询商品，支持名称搜索和排序
// @Tags         商品
// @Produce      json
// @Param        page query int false "页码(从1开始)" default(1)
// @Param        page_size query int false "每页数量(最大100)" default(20)
// @Param        keyword query string false "搜索关键词(商品名称)"
// @Param        sort_by query string false "排序方式" Enums(price_asc, price_desc, created_at_desc)
// @Success      200 {object} response.Response{data=dto.ListProductsResponse} "查询成功"
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	// 绑定Query参数
	var req dto.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.listProductsUseCase.Execute(c.Request.Context(), appproduct.ListProductsRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		SortBy:   req.SortBy,
	})

	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.ProductResponse, len(result.List))
	for i, p := range result.List {
		list[i] = dto.ProductResponse{
			ID:        p.ID,
			Name:      p.Name,
			Price:     p.Price,
			PriceYuan: dto.FormatPriceYuan(p.Price),
			Quantity:  p.Quantity,
			CreatedAt: p.CreatedAt,
		}
	}

	response.Success(c, &dto.ListProductsResponse{
		List:  list,
		Total: result.Total,
		Page:  result.Page,
		Size:  result.PageSize,
	})
}
