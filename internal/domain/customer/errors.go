package customer

import (
	apperrors "github.com/xiebiao/eshop/pkg/errors"
)

// 客户领域错误定义
var (
	// ErrCustomerNotFound 客户不存在
	ErrCustomerNotFound = apperrors.New(apperrors.ErrCodeCustomerNotFound, "客户不存在")

	// ErrEmailDuplicate 邮箱已被注册
	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeEmailDuplicate, "邮箱已被注册")
)
