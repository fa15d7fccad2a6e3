package customer

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/eshop/internal/domain/customer"
	"github.com/xiebiao/eshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/eshop/pkg/jwt"
)

// LoginUseCase 客户登录用例
// 设计说明：
// 1. 验证邮箱密码
// 2. 生成JWT Token对
// 3. 保存会话到Redis
type LoginUseCase struct {
	customerService customer.Service
	jwtManager      *jwt.Manager
	sessionStore    *redis.SessionStore
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	customerService customer.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
) *LoginUseCase {
	return &LoginUseCase{
		customerService: customerService,
		jwtManager:      jwtManager,
		sessionStore:    sessionStore,
	}
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	// 1. 验证邮箱密码（调用领域服务）
	c, err := uc.customerService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 生成JWT Token对
	tokenPair, err := uc.jwtManager.GenerateToken(c.ID, c.Email, c.Name)
	if err != nil {
		return nil, err
	}

	// 3. 保存会话到Redis
	sessionData := map[string]interface{}{
		"customer_id": c.ID,
		"email":       c.Email,
		"name":        c.Name,
		"login_at":    time.Now().Unix(),
	}

	// 会话有效期 = Refresh Token有效期
	if uc.sessionStore != nil {
		if err := uc.sessionStore.SaveSession(ctx, c.ID, sessionData, 7*24*time.Hour); err != nil {
			// 会话保存失败不影响登录，只记录日志
			log.Printf("保存登录会话失败: %v", err)
		}
	}

	// 4. 返回登录响应
	return &LoginResponse{
		Customer: CustomerInfo{
			ID:    c.ID,
			Name:  c.Name,
			Email: c.Email,
		},
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 客户登出用例
type LogoutUseCase struct {
	sessionStore *redis.SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore *redis.SessionStore) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore}
}

// Execute 执行登出
func (uc *LogoutUseCase) Execute(ctx context.Context, customerID string, accessToken string) error {
	// 1. 删除会话
	if err := uc.sessionStore.DeleteSession(ctx, customerID); err != nil {
		return err
	}

	// 2. 将Access Token加入黑名单（防止Token在过期前继续使用）
	if err := uc.sessionStore.AddToBlacklist(ctx, accessToken, 2*time.Hour); err != nil {
		return err
	}

	return nil
}

// =========================================
// 应用层DTO
// =========================================

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResponse 登录响应
type LoginResponse struct {
	Customer     CustomerInfo `json:"customer"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"` // Access Token过期时间（秒）
}

// CustomerInfo 客户信息
type CustomerInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
