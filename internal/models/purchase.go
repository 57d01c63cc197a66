package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrPurchaseImmutable is returned when anything tries to update a purchase.
var ErrPurchaseImmutable = errors.New("purchase records are immutable")

// Purchase is one sale of a menu item. CreatedAt is filled in by the
// storage layer on insert and the row is never updated afterwards.
type Purchase struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	MenuItemID uint      `gorm:"index;not null" json:"menu_item_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	MenuItem MenuItem `gorm:"constraint:OnDelete:CASCADE" json:"menu_item,omitempty"`
}

func (p *Purchase) BeforeUpdate(tx *gorm.DB) error {
	return ErrPurchaseImmutable
}

func (p Purchase) String() string {
	return fmt.Sprintf("%s purchased at %s", p.MenuItem.Name, p.CreatedAt.Format(time.RFC3339))
}
