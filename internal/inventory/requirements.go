package inventory

import (
	"context"
	"fmt"

	"kitchen-ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RequirementStatus is the per-ingredient view of a menu item's recipe.
type RequirementStatus struct {
	RequirementID uint            `json:"requirement_id"`
	IngredientID  uint            `json:"ingredient_id"`
	Ingredient    string          `json:"ingredient"`
	Unit          string          `json:"unit"`
	Required      decimal.Decimal `json:"required"`
	OnHand        decimal.Decimal `json:"on_hand"`
	Enough        bool            `json:"enough"`
	Shortfall     decimal.Decimal `json:"shortfall"`
}

func statusOf(r *models.RecipeRequirement) RequirementStatus {
	return RequirementStatus{
		RequirementID: r.ID,
		IngredientID:  r.IngredientID,
		Ingredient:    r.Ingredient.Name,
		Unit:          r.Ingredient.Unit,
		Required:      r.Quantity,
		OnHand:        r.Ingredient.Quantity,
		Enough:        r.Enough(),
		Shortfall:     r.Shortfall(),
	}
}

// allEnough is true when every requirement is covered, and for none.
func allEnough(reqs []models.RecipeRequirement) bool {
	for i := range reqs {
		if !reqs[i].Enough() {
			return false
		}
	}
	return true
}

// Covered is true when every line of a Shortages result is satisfied.
func Covered(lines []RequirementStatus) bool {
	for _, st := range lines {
		if !st.Enough {
			return false
		}
	}
	return true
}

// AddRequirement links an ingredient to a menu item with the quantity one
// sale consumes. Each (menu item, ingredient) pair may appear once.
func (l *Ledger) AddRequirement(ctx context.Context, menuItemID, ingredientID uint, qty decimal.Decimal) (*models.RecipeRequirement, error) {
	req := models.RecipeRequirement{
		MenuItemID:   menuItemID,
		IngredientID: ingredientID,
		Quantity:     qty,
	}
	if err := req.Validate(); err != nil {
		l.log.WithError(err).WithField("menu_item_id", menuItemID).Warn("requirement rejected")
		return nil, err
	}

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := getMenuItem(tx, menuItemID)
		if err != nil {
			return err
		}
		ing, err := getIngredient(tx, ingredientID)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.RecipeRequirement{}).
			Where("menu_item_id = ? AND ingredient_id = ?", menuItemID, ingredientID).
			Count(&count).Error; err != nil {
			return translateErr(err, "check requirement")
		}
		if count > 0 {
			return fmt.Errorf("%s already requires %s: %w", item.Name, ing.Name, ErrDuplicate)
		}

		if err := tx.Omit(clause.Associations).Create(&req).Error; err != nil {
			return translateErr(err, "create requirement")
		}
		req.MenuItem = *item
		req.Ingredient = *ing
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.log.WithFields(logrus.Fields{
		"id":            req.ID,
		"menu_item_id":  menuItemID,
		"ingredient_id": ingredientID,
		"quantity":      qty.String(),
	}).Info("requirement added")
	return &req, nil
}

func (l *Ledger) GetRequirement(ctx context.Context, id uint) (*models.RecipeRequirement, error) {
	return getRequirement(l.db.WithContext(ctx), id)
}

func getRequirement(db *gorm.DB, id uint) (*models.RecipeRequirement, error) {
	var req models.RecipeRequirement
	if err := db.Joins("MenuItem").Joins("Ingredient").
		Where("recipe_requirements.id = ?", id).
		First(&req).Error; err != nil {
		return nil, translateErr(err, fmt.Sprintf("requirement %d", id))
	}
	return &req, nil
}

// RequirementsFor fetches all requirements of a menu item joined with
// their ingredients, ordered by requirement id.
func (l *Ledger) RequirementsFor(ctx context.Context, menuItemID uint) ([]models.RecipeRequirement, error) {
	return requirementsFor(l.db.WithContext(ctx), menuItemID)
}

func requirementsFor(db *gorm.DB, menuItemID uint) ([]models.RecipeRequirement, error) {
	item, err := getMenuItem(db, menuItemID)
	if err != nil {
		return nil, err
	}

	var reqs []models.RecipeRequirement
	if err := db.Joins("Ingredient").
		Where("recipe_requirements.menu_item_id = ?", menuItemID).
		Order("recipe_requirements.id ASC").
		Find(&reqs).Error; err != nil {
		return nil, translateErr(err, "list requirements")
	}
	for i := range reqs {
		reqs[i].MenuItem = *item
	}
	return reqs, nil
}

// UpdateRequirement changes how much of the ingredient one sale consumes.
func (l *Ledger) UpdateRequirement(ctx context.Context, id uint, qty decimal.Decimal) (*models.RecipeRequirement, error) {
	var out *models.RecipeRequirement
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, err := getRequirement(tx, id)
		if err != nil {
			return err
		}
		req.Quantity = qty
		if err := req.Validate(); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(req).Error; err != nil {
			return translateErr(err, "update requirement")
		}
		out = req
		return nil
	})
	if err != nil {
		l.log.WithError(err).WithField("id", id).Warn("requirement update failed")
		return nil, err
	}

	l.log.WithFields(logrus.Fields{"id": id, "quantity": qty.String()}).Info("requirement updated")
	return out, nil
}

func (l *Ledger) DeleteRequirement(ctx context.Context, id uint) error {
	res := l.db.WithContext(ctx).Delete(&models.RecipeRequirement{}, id)
	if res.Error != nil {
		return translateErr(res.Error, "delete requirement")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("requirement %d: %w", id, ErrNotFound)
	}

	l.log.WithField("id", id).Info("requirement deleted")
	return nil
}

// Available reports whether current stock covers every requirement of the
// menu item. An item with no requirements is always available. The answer
// is computed from storage on each call.
func (l *Ledger) Available(ctx context.Context, menuItemID uint) (bool, error) {
	reqs, err := l.RequirementsFor(ctx, menuItemID)
	if err != nil {
		return false, err
	}
	return allEnough(reqs), nil
}

// Shortages returns the per-ingredient breakdown behind Available.
func (l *Ledger) Shortages(ctx context.Context, menuItemID uint) ([]RequirementStatus, error) {
	reqs, err := l.RequirementsFor(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	out := make([]RequirementStatus, 0, len(reqs))
	for i := range reqs {
		out = append(out, statusOf(&reqs[i]))
	}
	return out, nil
}
