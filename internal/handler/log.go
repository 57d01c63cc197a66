package handler

import (
	"net/http"
	"strings"
	"time"

	"kitchen-ledger/internal/models"
	"kitchen-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LogHandler 负责操作日志查询接口
type LogHandler struct {
	DB         *gorm.DB
	EncryptKey string
	PageSize   int
}

func NewLogHandler(db *gorm.DB, encryptKey string, pageSize int) *LogHandler {
	return &LogHandler{
		DB:         db,
		EncryptKey: encryptKey,
		PageSize:   pageSize,
	}
}

type logResp struct {
	ID        uint      `json:"id"`
	UserID    *uint     `json:"user_id"`
	Action    string    `json:"action"`
	Path      string    `json:"path"`
	Method    string    `json:"method"`
	Status    int       `json:"status"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

// ListLogs 列出当前用户自己的操作日志（分页 + 时间 + 方法 + 关键字）
// 路径和动作是密文，关键字在解密后过滤当前页。
func (h *LogHandler) ListLogs(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	page, size, offset := pagination(c, h.PageSize)
	start, end, ok := dateRange(c)
	if !ok {
		return
	}

	base := h.DB.Model(&models.AuditLog{}).Where("user_id = ?", user.ID)
	if !start.IsZero() {
		base = base.Where("created_at >= ?", start)
	}
	if !end.IsZero() {
		base = base.Where("created_at < ?", end)
	}
	if m := strings.ToUpper(strings.TrimSpace(c.Query("method"))); m != "" {
		base = base.Where("method = ?", m)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查询失败")
		return
	}

	var logs []models.AuditLog
	if err := base.Session(&gorm.Session{}).
		Order("created_at DESC, id DESC").
		Limit(size).
		Offset(offset).
		Find(&logs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查询失败")
		return
	}

	q := strings.TrimSpace(c.Query("q"))
	items := make([]logResp, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		path := util.DecryptField(h.EncryptKey, l.PathEnc)
		action := util.DecryptField(h.EncryptKey, l.ActionEnc)
		if q != "" && !strings.Contains(path, q) && !strings.Contains(action, q) {
			continue
		}
		items = append(items, logResp{
			ID:        l.ID,
			UserID:    l.UserID,
			Action:    action,
			Path:      path,
			Method:    l.Method,
			Status:    l.Status,
			IP:        l.IP,
			UserAgent: l.UserAgent,
			CreatedAt: l.CreatedAt,
		})
	}

	util.Success(c, util.Response{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	})
}
