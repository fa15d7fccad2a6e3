package customer

import (
	"context"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/eshop/pkg/errors"
)

// Service 客户领域服务
// 设计说明：
// 1. Service包含不属于单个实体的业务逻辑（密码加密、格式校验）
// 2. Service依赖Repository接口，不依赖具体实现（依赖倒置）
// 3. Service不处理HTTP请求，只处理业务逻辑
type Service interface {
	// Register 客户注册
	Register(ctx context.Context, name, email, password string) (*Customer, error)

	// Login 客户登录
	Login(ctx context.Context, email, password string) (*Customer, error)

	// ValidatePassword 验证密码
	ValidatePassword(hashedPassword, plainPassword string) error
}

type service struct {
	repo Repository
}

// NewService 创建客户服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 客户注册
// 业务规则：
// 1. 邮箱格式校验
// 2. 密码强度校验（8-20位，包含字母和数字）
// 3. 密码bcrypt加密（cost=12，自动加盐，抵抗彩虹表攻击）
// 4. 邮箱唯一性由数据库UNIQUE索引保证（应用层SELECT再INSERT有并发窗口）
func (s *service) Register(ctx context.Context, name, email, password string) (*Customer, error) {
	// 1. 邮箱格式校验
	if !isValidEmail(email) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	}

	// 2. 密码强度校验
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	// 3. 姓名校验
	if len(name) < 2 || len(name) > 50 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "姓名长度应为2-50个字符")
	}

	// 4. 密码加密
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	// 5. 创建客户实体并持久化
	customer := NewCustomer(name, email, string(hashedPassword))
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err // Repository已转换为业务错误
	}

	return customer, nil
}

// Login 客户登录
func (s *service) Login(ctx context.Context, email, password string) (*Customer, error) {
	// 1. 根据邮箱查找客户
	customer, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err // Repository已转换为ErrCustomerNotFound
	}

	// 2. 验证密码
	if err := s.ValidatePassword(customer.Password, password); err != nil {
		return nil, err
	}

	return customer, nil
}

// ValidatePassword 验证明文密码与哈希值是否匹配
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return apperrors.ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}

// =========================================
// 辅助函数：业务规则校验
// =========================================

// isValidEmail 邮箱格式校验
// 简单的正则校验，生产环境可使用更严格的RFC 5322标准
func isValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

// validatePasswordStrength 密码强度校验
// 规则：8-20位，必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return apperrors.ErrWeakPassword
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasDigit := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasLetter || !hasDigit {
		return apperrors.ErrWeakPassword
	}

	return nil
}
