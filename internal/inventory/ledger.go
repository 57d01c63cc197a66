// Package inventory is the restaurant inventory ledger: ingredients, menu
// items, the recipe requirements linking them, purchases, and the
// availability of each menu item given current stock.
package inventory

import (
	"context"
	"fmt"

	"kitchen-ledger/internal/logger"
	"kitchen-ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Ledger runs every inventory operation against the storage collaborator.
// It holds no state of its own; uniqueness, cascades and creation
// timestamps are enforced by the schema declared on the models.
type Ledger struct {
	db  *gorm.DB
	log *logrus.Entry
}

func New(db *gorm.DB) *Ledger {
	return &Ledger{
		db:  db,
		log: logger.Component("ledger"),
	}
}

// IngredientPatch carries the fields of an ingredient update; nil fields
// are left unchanged.
type IngredientPatch struct {
	Name         *string
	Quantity     *decimal.Decimal
	Unit         *string
	PricePerUnit *decimal.Decimal
}

// CreateIngredient inserts a new ingredient. Names are unique.
func (l *Ledger) CreateIngredient(ctx context.Context, in models.Ingredient) (*models.Ingredient, error) {
	in.ID = 0
	if err := in.Validate(); err != nil {
		l.log.WithError(err).WithField("name", in.Name).Warn("ingredient rejected")
		return nil, err
	}

	db := l.db.WithContext(ctx)
	if err := l.ensureNameFree(db, &models.Ingredient{}, in.Name, 0); err != nil {
		return nil, err
	}
	if err := db.Create(&in).Error; err != nil {
		return nil, translateErr(err, "create ingredient")
	}

	l.log.WithFields(logrus.Fields{"id": in.ID, "name": in.Name}).Info("ingredient created")
	return &in, nil
}

func (l *Ledger) GetIngredient(ctx context.Context, id uint) (*models.Ingredient, error) {
	return getIngredient(l.db.WithContext(ctx), id)
}

func getIngredient(db *gorm.DB, id uint) (*models.Ingredient, error) {
	var ing models.Ingredient
	if err := db.First(&ing, id).Error; err != nil {
		return nil, translateErr(err, fmt.Sprintf("ingredient %d", id))
	}
	return &ing, nil
}

// ListIngredients returns all ingredients ordered by name.
func (l *Ledger) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var list []models.Ingredient
	if err := l.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, translateErr(err, "list ingredients")
	}
	return list, nil
}

// UpdateIngredient applies patch to the ingredient. The whole update is
// rejected if any resulting field is invalid.
func (l *Ledger) UpdateIngredient(ctx context.Context, id uint, patch IngredientPatch) (*models.Ingredient, error) {
	var out *models.Ingredient
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ing, err := getIngredient(tx, id)
		if err != nil {
			return err
		}
		if patch.Name != nil {
			ing.Name = *patch.Name
		}
		if patch.Quantity != nil {
			ing.Quantity = *patch.Quantity
		}
		if patch.Unit != nil {
			ing.Unit = *patch.Unit
		}
		if patch.PricePerUnit != nil {
			ing.PricePerUnit = *patch.PricePerUnit
		}
		if err := ing.Validate(); err != nil {
			return err
		}
		if patch.Name != nil {
			if err := l.ensureNameFree(tx, &models.Ingredient{}, ing.Name, ing.ID); err != nil {
				return err
			}
		}
		if err := tx.Save(ing).Error; err != nil {
			return translateErr(err, "update ingredient")
		}
		out = ing
		return nil
	})
	if err != nil {
		l.log.WithError(err).WithField("id", id).Warn("ingredient update failed")
		return nil, err
	}

	l.log.WithFields(logrus.Fields{"id": out.ID, "quantity": out.Quantity.String()}).Info("ingredient updated")
	return out, nil
}

// AdjustStock adds delta (negative to consume) to the ingredient's quantity.
// Stock may never drop below zero.
func (l *Ledger) AdjustStock(ctx context.Context, id uint, delta decimal.Decimal) (*models.Ingredient, error) {
	var out *models.Ingredient
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ing, err := getIngredient(tx, id)
		if err != nil {
			return err
		}
		ing.Quantity = ing.Quantity.Add(delta)
		if err := ing.Validate(); err != nil {
			return err
		}
		if err := tx.Save(ing).Error; err != nil {
			return translateErr(err, "adjust stock")
		}
		out = ing
		return nil
	})
	if err != nil {
		l.log.WithError(err).WithFields(logrus.Fields{"id": id, "delta": delta.String()}).Warn("stock adjustment failed")
		return nil, err
	}

	l.log.WithFields(logrus.Fields{"id": id, "delta": delta.String(), "quantity": out.Quantity.String()}).Info("stock adjusted")
	return out, nil
}

// DeleteIngredient removes the ingredient; its recipe requirements go with it.
func (l *Ledger) DeleteIngredient(ctx context.Context, id uint) error {
	res := l.db.WithContext(ctx).Delete(&models.Ingredient{}, id)
	if res.Error != nil {
		return translateErr(res.Error, "delete ingredient")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("ingredient %d: %w", id, ErrNotFound)
	}

	l.log.WithField("id", id).Info("ingredient deleted")
	return nil
}

// ensureNameFree rejects a name already used by another row of model's table.
// The unique index is still the final guard.
func (l *Ledger) ensureNameFree(db *gorm.DB, model interface{}, name string, selfID uint) error {
	var count int64
	q := db.Model(model).Where("name = ?", name)
	if selfID != 0 {
		q = q.Where("id <> ?", selfID)
	}
	if err := q.Count(&count).Error; err != nil {
		return translateErr(err, "check name")
	}
	if count > 0 {
		return fmt.Errorf("name %q: %w", name, ErrDuplicate)
	}
	return nil
}

// IngredientByName looks an ingredient up by its unique name.
func (l *Ledger) IngredientByName(ctx context.Context, name string) (*models.Ingredient, error) {
	var ing models.Ingredient
	if err := l.db.WithContext(ctx).Where("name = ?", name).First(&ing).Error; err != nil {
		return nil, translateErr(err, fmt.Sprintf("ingredient %q", name))
	}
	return &ing, nil
}
