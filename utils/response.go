package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"techlib/errs"
)

// OK 统一成功响应
func OK(c *gin.Context, msg string, data interface{}) {
	body := gin.H{
		"code": 200,
		"msg":  msg,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(http.StatusOK, body)
}

// Fail 统一错误响应
func Fail(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, gin.H{
		"code": statusCode,
		"msg":  msg,
	})
}

// FailFromError 按业务错误类型映射HTTP状态码
// 未识别的错误按500处理，不向外暴露存储细节
func FailFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrConflict):
		Fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrUnauthorized):
		Fail(c, http.StatusUnauthorized, err.Error())
	default:
		Fail(c, http.StatusInternalServerError, "服务器内部错误")
	}
}
