package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"kitchen-ledger/internal/inventory"
	"kitchen-ledger/internal/models"
	"kitchen-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BackupHandler 负责备份相关接口
type BackupHandler struct {
	DB         *gorm.DB
	Ledger     *inventory.Ledger
	EncryptKey string
	BackupDir  string
}

// NewBackupHandler 构造函数
func NewBackupHandler(db *gorm.DB, ledger *inventory.Ledger, encryptKey, backupDir string) *BackupHandler {
	return &BackupHandler{
		DB:         db,
		Ledger:     ledger,
		EncryptKey: encryptKey,
		BackupDir:  backupDir,
	}
}

// CreateBackup 生成整个库存账本的加密备份文件
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	snap, err := h.Ledger.Snapshot(c.Request.Context())
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查询数据失败")
		return
	}
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "序列化失败")
		return
	}

	enc, err := util.EncryptAES(h.EncryptKey, raw)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "加密失败")
		return
	}

	if err := os.MkdirAll(h.BackupDir, 0o755); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "创建备份目录失败")
		return
	}

	fileName := fmt.Sprintf("backup-%s.bin", uuid.New().String())
	filePath := filepath.Join(h.BackupDir, fileName)

	if err := os.WriteFile(filePath, enc, 0o600); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "写入备份文件失败")
		return
	}

	backup := models.Backup{
		UserID:   user.ID,
		FileName: fileName,
		FilePath: filePath,
		Size:     int64(len(enc)),
	}
	if err := h.DB.Create(&backup).Error; err != nil {
		_ = os.Remove(filePath)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "保存备份记录失败")
		return
	}

	util.Success(c, util.Response{
		"backup": gin.H{
			"id":           backup.ID,
			"file_name":    backup.FileName,
			"size":         backup.Size,
			"created_at":   backup.CreatedAt,
			"ingredients":  len(snap.Ingredients),
			"menu_items":   len(snap.MenuItems),
			"requirements": len(snap.Requirements),
			"purchases":    len(snap.Purchases),
		},
	})
}

// ListBackups 列出已有的备份
func (h *BackupHandler) ListBackups(c *gin.Context) {
	var list []models.Backup
	if err := h.DB.Order("created_at DESC, id DESC").Find(&list).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查询备份失败")
		return
	}

	items := make([]gin.H, 0, len(list))
	for i := range list {
		b := &list[i]
		items = append(items, gin.H{
			"id":         b.ID,
			"user_id":    b.UserID,
			"file_name":  b.FileName,
			"size":       b.Size,
			"created_at": b.CreatedAt,
		})
	}

	util.Success(c, util.Response{
		"items": items,
	})
}

func (h *BackupHandler) findBackup(c *gin.Context) (*models.Backup, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	var backup models.Backup
	if err := h.DB.First(&backup, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "备份不存在")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查询备份失败")
		}
		return nil, false
	}
	return &backup, true
}

// DownloadBackup 下载指定备份文件
func (h *BackupHandler) DownloadBackup(c *gin.Context) {
	backup, ok := h.findBackup(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", backup.FileName))
	c.File(backup.FilePath)
}

// DeleteBackup 删除备份记录及对应文件
func (h *BackupHandler) DeleteBackup(c *gin.Context) {
	backup, ok := h.findBackup(c)
	if !ok {
		return
	}

	// 先删文件，再删记录
	_ = os.Remove(backup.FilePath)
	if err := h.DB.Delete(backup).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "删除备份记录失败")
		return
	}

	util.Success(c, util.Response{
		"message": "删除成功",
	})
}

// RestoreBackup 用指定备份覆盖当前的原料、菜单、配方和销售记录
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	backup, ok := h.findBackup(c)
	if !ok {
		return
	}

	// 读文件并解密
	encData, err := os.ReadFile(backup.FilePath)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "读取备份文件失败")
		return
	}

	raw, err := util.DecryptAES(h.EncryptKey, encData)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "解密备份文件失败")
		return
	}

	var snap inventory.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "解析备份数据失败")
		return
	}

	if err := h.Ledger.Restore(c.Request.Context(), &snap); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "恢复失败")
		return
	}

	util.Success(c, util.Response{
		"message":      "恢复成功",
		"ingredients":  len(snap.Ingredients),
		"menu_items":   len(snap.MenuItems),
		"requirements": len(snap.Requirements),
		"purchases":    len(snap.Purchases),
	})
}
