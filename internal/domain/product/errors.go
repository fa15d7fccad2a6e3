package product

import (
	apperrors "github.com/xiebiao/eshop/pkg/errors"
)

// 商品领域错误定义
var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = apperrors.New(apperrors.ErrCodeProductNotFound, "商品不存在")

	// ErrProductsUnavailable 部分商品不可购买（批量校验：目录匹配数少于请求数）
	ErrProductsUnavailable = apperrors.New(apperrors.ErrCodeProductsUnavailable, "部分商品不存在或已下架")

	// ErrProductUnavailable 单个商品不可购买（逐项校验的兜底分支）
	ErrProductUnavailable = apperrors.New(apperrors.ErrCodeProductUnavailable, "商品不存在或已下架")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须大于0")

	// ErrInvalidQuantity 无效的数量
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrInvalidStock 无效的库存
	ErrInvalidStock = apperrors.New(apperrors.ErrCodeInvalidParams, "库存不能为负数")
)
