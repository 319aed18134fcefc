package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"skillswap/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// getTokenJTI 提取当前 Access Token 的 jti 与过期时间（登出用）
func getTokenJTI(c *gin.Context) (string, time.Time) {
	jti := c.GetString("token_jti")

	var exp time.Time
	if v, exists := c.Get("token_exp"); exists {
		if t, ok := v.(time.Time); ok {
			exp = t
		}
	}
	return jti, exp
}
