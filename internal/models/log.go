package models

import "time"

// AuditLog records staff operations against the ledger.
// Path and action are stored encrypted only.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    *uint     `gorm:"index"`
	PathEnc   string    `gorm:"size:1024"` // 加密后的路径
	Method    string    `gorm:"size:16;index"`
	ActionEnc string    `gorm:"size:4096"` // 加密后的动作（方法 + 路径 + 请求体摘要）
	Status    int
	IP        string    `gorm:"size:64"`
	UserAgent string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"index"`
}
