package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/eshop/pkg/errors"
)

// SessionStore 会话存储
// 设计说明：
// 1. 使用Redis存储客户登录会话
// 2. 支持JWT黑名单（客户登出、强制下线）
// 3. Key设计：session:{customer_id}、blacklist:{token}
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// SaveSession 保存客户会话
// 设计说明：
// 1. 存储登录信息（登录时间、IP地址等）
// 2. 设置过期时间（与Refresh Token一致）
// 3. 可用于统计在线客户、强制下线等场景
func (s *SessionStore) SaveSession(ctx context.Context, customerID string, sessionData map[string]interface{}, ttl time.Duration) error {
	key := fmt.Sprintf("session:%s", customerID)

	// 使用HMSet存储多个字段
	if err := s.client.HMSet(ctx, key, sessionData).Err(); err != nil {
		return apperrors.Wrap(err, "保存会话失败")
	}

	// 设置过期时间
	if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
		return apperrors.Wrap(err, "设置会话过期时间失败")
	}

	return nil
}

// GetSession 获取客户会话
func (s *SessionStore) GetSession(ctx context.Context, customerID string) (map[string]string, error) {
	key := fmt.Sprintf("session:%s", customerID)

	result, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "获取会话失败")
	}

	if len(result) == 0 {
		return nil, apperrors.ErrUnauthorized
	}

	return result, nil
}

// DeleteSession 删除客户会话（用于登出）
func (s *SessionStore) DeleteSession(ctx context.Context, customerID string) error {
	key := fmt.Sprintf("session:%s", customerID)

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return apperrors.Wrap(err, "删除会话失败")
	}

	return nil
}

// AddToBlacklist 将Token加入黑名单
// 使用场景：
// 1. 客户登出
// 2. Token泄露后强制失效
// 3. 客户修改密码后强制所有Token失效
func (s *SessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	key := fmt.Sprintf("blacklist:%s", token)

	if err := s.client.Set(ctx, key, "revoked", ttl).Err(); err != nil {
		return apperrors.Wrap(err, "添加Token到黑名单失败")
	}

	return nil
}

// IsInBlacklist 检查Token是否在黑名单中
func (s *SessionStore) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	key := fmt.Sprintf("blacklist:%s", token)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "检查黑名单失败")
	}

	return exists > 0, nil
}
