package handles

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"techlib/services"
	"techlib/utils"
)

// SessionCookieName 管理员会话Cookie名
const SessionCookieName = "techlib_session"

// AuthHandler 登录/注销处理器
type AuthHandler struct {
	sessions *services.SessionService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(sessions *services.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login 管理员登录
// POST /api/login  请求体 {"password": "..."}
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "无效的请求数据")
		return
	}

	session, err := h.sessions.Login(req.Password)
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	maxAge := int(session.ExpiresAt.Sub(session.CreatedAt).Seconds())
	c.SetCookie(SessionCookieName, session.Token, maxAge, "/", "", false, true)

	utils.OK(c, "登录成功", gin.H{
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
	})
}

// Logout 注销
// POST /api/admin/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(SessionCookieName)
	if err := h.sessions.Logout(token); err != nil {
		utils.FailFromError(c, err)
		return
	}

	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
	utils.OK(c, "已注销", nil)
}
