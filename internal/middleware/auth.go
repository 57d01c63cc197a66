package middleware

import (
	"net/http"
	"strings"
	"time"

	"kitchen-ledger/internal/models"
	"kitchen-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware 校验 JWT 和对应的会话，并在 context 里放入当前用户和会话。
func AuthMiddleware(jwtSecret, issuer string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, issuer, tokenStr)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "登录已失效，请重新登录")
			c.Abort()
			return
		}

		// token 对应的会话必须存在且未注销
		var session models.Session
		if err := db.Where("id = ? AND user_id = ?", claims.ID, claims.UserID).
			First(&session).Error; err != nil || !session.Active(time.Now()) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "登录已失效，请重新登录")
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "用户不存在")
			} else {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查询用户失败")
			}
			c.Abort()
			return
		}

		c.Set("currentUser", &user)
		c.Set("currentSession", &session)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	// 1) Header: Authorization: Bearer xxx
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	// 2) URL 查询参数 ?token=xxx（用于下载导出文件等无法自定义 Header 的场景）
	if t := c.Query("token"); t != "" {
		return t
	}

	// 3) Cookie kl_token
	if cookie, err := c.Cookie("kl_token"); err == nil {
		return cookie
	}
	return ""
}
