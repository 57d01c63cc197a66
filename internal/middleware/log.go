package middleware

import (
	"bytes"
	"io"

	"kitchen-ledger/internal/logger"
	"kitchen-ledger/internal/models"
	"kitchen-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// maxAuditBody 请求体超过该长度时不写入审计日志
const maxAuditBody = 2000

// secretRoutes 请求体里带密码的接口，只记录方法和路径
var secretRoutes = map[string]bool{
	"/api/profile/password": true,
	"/api/auth/register":    true,
	"/api/auth/login":       true,
}

// auditAction 组装写入审计日志的动作描述
func auditAction(method, path string, body []byte) string {
	action := method + " " + path
	if secretRoutes[path] {
		return action + " [redacted]"
	}
	if len(body) > 0 && len(body) < maxAuditBody {
		action += " " + string(body)
	}
	return action
}

// AuditMiddleware 记录登录用户的每一次操作，路径和动作加密存储
func AuditMiddleware(db *gorm.DB, encryptKey string) gin.HandlerFunc {
	log := logger.Component("audit")
	return func(c *gin.Context) {
		var userID uint
		if v, ok := c.Get("currentUser"); ok {
			if user, ok := v.(*models.User); ok && user != nil {
				userID = user.ID
			}
		}

		// 读取请求体后放回去，保证 handler 还能读到
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		// 只记录登录用户的操作
		if userID == 0 {
			return
		}

		path := c.Request.URL.Path
		action := auditAction(c.Request.Method, path, bodyBytes)

		encPath, err := util.EncryptField(encryptKey, path)
		if err != nil {
			log.WithError(err).Error("encrypt audit path")
			return
		}
		encAction, err := util.EncryptField(encryptKey, action)
		if err != nil {
			log.WithError(err).Error("encrypt audit action")
			return
		}

		entry := models.AuditLog{
			UserID:    &userID,
			PathEnc:   encPath,
			Method:    c.Request.Method,
			ActionEnc: encAction,
			Status:    c.Writer.Status(),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		if err := db.Create(&entry).Error; err != nil {
			log.WithError(err).WithField("path", path).Warn("write audit log")
		}
	}
}
