package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 统一响应信封（与前端 API 约定一致）：
//
//	成功: {"success": true, <payload>...}
//	失败: {"success": false, "error": "..."}
//
// payload 直接平铺在信封内（如 "orders"、"department"、"id"），
// 而不是包在 data 字段里——与既有前端的解析方式保持兼容。

// ── 成功响应 ──

// OK 200 成功响应，payload 字段平铺进信封
func OK(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// ── 错误响应 ──

// Fail 通用错误响应
func Fail(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, gin.H{
		"success": false,
		"error":   message,
	})
}

// ── 常见快捷方式 ──

// BadRequest 400 参数/校验错误
func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

// NotFound 404 业务对象不存在
func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

// Conflict 409 唯一性冲突
func Conflict(c *gin.Context, message string) {
	Fail(c, http.StatusConflict, message)
}

// InternalError 500
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "internal server error"
	}
	Fail(c, http.StatusInternalServerError, message)
}
