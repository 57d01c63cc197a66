package models

import (
	"fmt"
	"strings"
	"time"

	"kitchen-ledger/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ingredient is a stocked raw material.
// Quantity and PricePerUnit are exact decimals; neither may go below zero.
type Ingredient struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Quantity     decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"quantity"`
	Unit         string          `gorm:"size:20;not null" json:"unit"` // e.g. kg, liters, pieces
	PricePerUnit decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price_per_unit"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Validate checks range and field rules without touching storage.
func (i *Ingredient) Validate() error {
	i.Name = strings.TrimSpace(i.Name)
	i.Unit = strings.TrimSpace(i.Unit)
	if err := util.ValidateName(i.Name); err != nil {
		return err
	}
	if err := util.ValidateUnit(i.Unit); err != nil {
		return err
	}
	if err := util.ValidateQuantity("quantity", i.Quantity); err != nil {
		return err
	}
	return util.ValidatePrice("price_per_unit", i.PricePerUnit)
}

func (i *Ingredient) BeforeSave(tx *gorm.DB) error {
	return i.Validate()
}

func (i Ingredient) String() string {
	return fmt.Sprintf("%s (%s %s)", i.Name, i.Quantity.String(), i.Unit)
}
