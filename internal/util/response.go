package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 是 data 字段的内容
type Response map[string]interface{}

// 返回码：前三位对应 HTTP 状态，后两位区分同一状态下的不同原因
const (
	CodeOK           = 0
	CodeInvalidParam = 40001 // 参数错误、数量或价格越界
	CodeAuth         = 40101 // 未登录或会话失效
	CodeNotFound     = 40401 // 原料、菜品、配方、销售记录不存在
	CodeConflict     = 40901 // 名称重复或配方重复
	CodeOutOfStock   = 40902 // 库存不足，无法出售
	CodeServerErr    = 50001
)

// Success 返回 {"code":0,"data":...}
func Success(c *gin.Context, data Response) {
	c.JSON(http.StatusOK, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

// Error 返回 {"code":...,"message":...}
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	Fail(c, httpStatus, code, msg, nil)
}

// Fail 和 Error 一样，但可以附带额外字段，例如库存不足时的缺料明细
func Fail(c *gin.Context, httpStatus int, code int, msg string, extra Response) {
	body := gin.H{
		"code":    code,
		"message": msg,
	}
	for k, v := range extra {
		if _, taken := body[k]; !taken {
			body[k] = v
		}
	}
	c.JSON(httpStatus, body)
}
