package customer

import (
	"time"
)

// Customer 客户实体（聚合根）
// DDD设计说明：
// 1. Customer是客户聚合的根实体，下单流程中只读（订单侧不修改客户资料）
// 2. ID使用UUID字符串（由仓储层在创建时生成）
// 3. 密码已加密存储（bcrypt），不暴露明文
// 4. 领域实体不依赖GORM tag（infrastructure层的Repository负责映射）
type Customer struct {
	ID        string
	Name      string
	Email     string
	Password  string // bcrypt哈希值
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCustomer 创建新客户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewCustomer(name, email, hashedPassword string) *Customer {
	now := time.Now()
	return &Customer{
		Name:      name,
		Email:     email,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateName 更新客户姓名（领域行为）
func (c *Customer) UpdateName(name string) {
	c.Name = name
	c.UpdatedAt = time.Now()
}
