package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/eshop/pkg/errors"
)

// memRepo 内存实现的客户仓储
type memRepo struct {
	byEmail map[string]*Customer
}

func newMemRepo() *memRepo {
	return &memRepo{byEmail: make(map[string]*Customer)}
}

func (r *memRepo) Create(ctx context.Context, c *Customer) error {
	if _, ok := r.byEmail[c.Email]; ok {
		return ErrEmailDuplicate
	}
	c.ID = "c-" + c.Email
	r.byEmail[c.Email] = c
	return nil
}

func (r *memRepo) FindByID(ctx context.Context, id string) (*Customer, error) {
	for _, c := range r.byEmail {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, ErrCustomerNotFound
}

func (r *memRepo) FindByEmail(ctx context.Context, email string) (*Customer, error) {
	c, ok := r.byEmail[email]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	return c, nil
}

// TestService_Register 测试注册的业务规则
func TestService_Register(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	// 正常注册
	c, err := svc.Register(ctx, "张三", "zhangsan@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "张三", c.Name)
	// 密码已加密,不等于明文
	assert.NotEqual(t, "password123", c.Password)

	// 注册后可以用明文密码登录
	logged, err := svc.Login(ctx, "zhangsan@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, c.ID, logged.ID)
}

// TestService_Register_InvalidEmail 测试邮箱格式校验
func TestService_Register_InvalidEmail(t *testing.T) {
	svc := NewService(newMemRepo())

	for _, email := range []string{"", "not-an-email", "a@b", "@example.com"} {
		_, err := svc.Register(context.Background(), "张三", email, "password123")
		require.Error(t, err, "邮箱%q应校验失败", email)

		appErr := apperrors.GetAppError(err)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, appErr.Code)
	}
}

// TestService_Register_WeakPassword 测试密码强度校验
func TestService_Register_WeakPassword(t *testing.T) {
	svc := NewService(newMemRepo())

	cases := []string{
		"short1",                      // 太短
		"onlyletterspassword",         // 无数字
		"123456789012",                // 无字母
		"thispasswordiswaytoolong123", // 太长
	}
	for _, password := range cases {
		_, err := svc.Register(context.Background(), "张三", "a@example.com", password)
		assert.ErrorIs(t, err, apperrors.ErrWeakPassword, "密码%q应校验失败", password)
	}
}

// TestService_Register_DuplicateEmail 测试邮箱重复
func TestService_Register_DuplicateEmail(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "张三", "dup@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "李四", "dup@example.com", "password456")
	assert.ErrorIs(t, err, ErrEmailDuplicate)
}

// TestService_Login_WrongPassword 测试密码错误
func TestService_Login_WrongPassword(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "张三", "zhangsan@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "zhangsan@example.com", "wrongpassword1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

	// 不存在的邮箱
	_, err = svc.Login(ctx, "ghost@example.com", "password123")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
