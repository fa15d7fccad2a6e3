package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	appcustomer "github.com/xiebiao/eshop/internal/application/customer"
	"github.com/xiebiao/eshop/internal/interface/http/dto"
	"github.com/xiebiao/eshop/internal/interface/http/middleware"
	"github.com/xiebiao/eshop/pkg/response"
)

// CustomerHandler 客户HTTP处理器
// 设计说明：
// 1. Handler只负责HTTP相关的事情：解析请求、调用应用层、返回响应
// 2. 不包含业务逻辑（业务逻辑在domain和application层）
// 3. 使用依赖注入，便于测试
type CustomerHandler struct {
	registerUseCase *appcustomer.RegisterUseCase
	loginUseCase    *appcustomer.LoginUseCase
	logoutUseCase   *appcustomer.LogoutUseCase
}

// NewCustomerHandler 创建客户处理器
func NewCustomerHandler(
	registerUseCase *appcustomer.RegisterUseCase,
	loginUseCase *appcustomer.LoginUseCase,
	logoutUseCase *appcustomer.LogoutUseCase,
) *CustomerHandler {
	return &CustomerHandler{
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
		logoutUseCase:   logoutUseCase,
	}
}

// Register 客户注册
// @Summary      客户注册
// @Description  创建新客户账号
// @Tags         客户
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      200 {object} response.Response{data=dto.CustomerResponse} "注册成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "邮箱已存在"
// @Router       /api/v1/customers [post]
func (h *CustomerHandler) Register(c *gin.Context) {
	// 1. 绑定并验证参数
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	// 2. 调用应用层用例
	result, err := h.registerUseCase.Execute(c.Request.Context(), appcustomer.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})

	if err != nil {
		// 业务错误（如邮箱已存在、密码强度不足）
		response.Error(c, err)
		return
	}

	// 3. 返回成功响应
	response.Success(c, &dto.CustomerResponse{
		ID:    result.ID,
		Name:  result.Name,
		Email: result.Email,
	})
}

// Login 客户登录
// @Summary      客户登录
// @Description  验证邮箱密码，返回JWT Token
// @Tags         客户
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=dto.LoginResponse} "登录成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "邮箱或密码错误"
// @Router       /api/v1/customers/login [post]
func (h *CustomerHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appcustomer.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})

	if err != nil {
		// 登录失败（邮箱不存在或密码错误）
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.LoginResponse{
		Customer: dto.CustomerResponse{
			ID:    result.Customer.ID,
			Name:  result.Customer.Name,
			Email: result.Customer.Email,
		},
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	})
}

// Logout 客户登出
// @Summary      客户登出
// @Description  删除会话并将当前Token加入黑名单
// @Tags         客户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "登出成功"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/customers/logout [post]
func (h *CustomerHandler) Logout(c *gin.Context) {
	customerID := middleware.MustGetCustomerID(c)

	// 取出原始Token用于加入黑名单
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	if err := h.logoutUseCase.Execute(c.Request.Context(), customerID, token); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "登出成功"})
}
