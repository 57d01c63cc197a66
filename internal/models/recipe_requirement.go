package models

import (
	"fmt"
	"time"

	"kitchen-ledger/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecipeRequirement is the quantity of one ingredient consumed by one sale
// of a menu item. (menu_item_id, ingredient_id) is unique and the row is
// removed together with either parent.
type RecipeRequirement struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	MenuItemID   uint            `gorm:"not null;uniqueIndex:idx_requirement_pair,priority:1" json:"menu_item_id"`
	IngredientID uint            `gorm:"not null;uniqueIndex:idx_requirement_pair,priority:2;index" json:"ingredient_id"`
	Quantity     decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"quantity"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	MenuItem   MenuItem   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Ingredient Ingredient `gorm:"constraint:OnDelete:CASCADE" json:"ingredient,omitempty"`
}

func (r *RecipeRequirement) Validate() error {
	return util.ValidateQuantity("quantity", r.Quantity)
}

func (r *RecipeRequirement) BeforeSave(tx *gorm.DB) error {
	return r.Validate()
}

// Enough reports whether the loaded ingredient's stock covers this
// requirement. Ingredient must be populated by the caller.
func (r *RecipeRequirement) Enough() bool {
	return r.Ingredient.Quantity.GreaterThanOrEqual(r.Quantity)
}

// Shortfall is how much stock is missing, zero when Enough.
func (r *RecipeRequirement) Shortfall() decimal.Decimal {
	if r.Enough() {
		return decimal.Zero
	}
	return r.Quantity.Sub(r.Ingredient.Quantity)
}

func (r RecipeRequirement) String() string {
	return fmt.Sprintf("%s requires %s %s of %s",
		r.MenuItem.Name, r.Quantity.String(), r.Ingredient.Unit, r.Ingredient.Name)
}
