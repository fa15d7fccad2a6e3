package dto

// RegisterRequest HTTP层注册请求
// 说明：HTTP层的DTO，包含参数验证tag
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50" example:"张三"`
	Email    string `json:"email" binding:"required,email" example:"zhangsan@example.com"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"password123"`
}

// CustomerResponse 客户响应（不包含密码）
type CustomerResponse struct {
	ID    string `json:"id" example:"3b9e0b48-5a7e-4f4b-b7c8-0d3f6b1a2c9d"`
	Name  string `json:"name" example:"张三"`
	Email string `json:"email" example:"zhangsan@example.com"`
}

// LoginRequest HTTP层登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"zhangsan@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// LoginResponse HTTP层登录响应
type LoginResponse struct {
	Customer     CustomerResponse `json:"customer"`
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	ExpiresIn    int64            `json:"expires_in" example:"7200"` // Access Token过期时间（秒）
}
