package customer

import (
	"context"

	"github.com/xiebiao/eshop/internal/domain/customer"
)

// RegisterUseCase 客户注册用例
// 设计说明：
// 1. Application层负责用例编排，协调多个领域服务
// 2. 当前注册用例比较简单，只调用一个领域服务
// 3. 未来可能扩展：发送欢迎邮件、记录审计日志、触发事件等
type RegisterUseCase struct {
	customerService customer.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(customerService customer.Service) *RegisterUseCase {
	return &RegisterUseCase{
		customerService: customerService,
	}
}

// Execute 执行注册
// 返回：RegisterResponse（应用层DTO，不是领域实体）
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	// 1. 调用领域服务执行注册
	c, err := uc.customerService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 领域实体 → 应用层DTO
	// 说明：不直接返回领域实体，而是转换为DTO
	// 好处：领域模型变更不影响API契约
	return &RegisterResponse{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
	}, nil
}

// =========================================
// 应用层DTO（数据传输对象）
// =========================================

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

// RegisterResponse 注册响应
// 说明：不返回密码字段（安全考虑）
type RegisterResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
