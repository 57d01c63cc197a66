package models

import (
	"fmt"
	"strings"
	"time"

	"kitchen-ledger/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuItem is a sellable product. Its ingredients are linked through
// RecipeRequirement rows, never owned directly.
type MenuItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (m *MenuItem) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	if err := util.ValidateName(m.Name); err != nil {
		return err
	}
	return util.ValidatePrice("price", m.Price)
}

func (m *MenuItem) BeforeSave(tx *gorm.DB) error {
	return m.Validate()
}

func (m MenuItem) String() string {
	return fmt.Sprintf("%s ($%s)", m.Name, m.Price.StringFixed(2))
}
