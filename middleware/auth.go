package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"techlib/handles"
	"techlib/services"
)

// AdminAuth 管理员会话认证中间件
// 优先读会话Cookie，兼容 "Authorization: Bearer <token>" 头
// 过期会话和没有会话表现一致：401 并清掉Cookie，之后才可能碰到存储层
func AdminAuth(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(handles.SessionCookieName)
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			token = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		}

		if err := sessions.Validate(token); err != nil {
			c.SetCookie(handles.SessionCookieName, "", -1, "/", "", false, true)
			c.JSON(http.StatusUnauthorized, gin.H{
				"code": 401,
				"msg":  "未认证或会话已过期",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
