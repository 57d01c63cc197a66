package inventory

import (
	"context"
	"time"

	"kitchen-ledger/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Snapshot is a full copy of the inventory tables, used for backups.
type Snapshot struct {
	Created      time.Time                  `json:"created"`
	Ingredients  []models.Ingredient        `json:"ingredients"`
	MenuItems    []models.MenuItem          `json:"menu_items"`
	Requirements []models.RecipeRequirement `json:"requirements"`
	Purchases    []models.Purchase          `json:"purchases"`
}

func (l *Ledger) Snapshot(ctx context.Context) (*Snapshot, error) {
	db := l.db.WithContext(ctx)
	snap := &Snapshot{Created: time.Now()}

	if err := db.Order("id ASC").Find(&snap.Ingredients).Error; err != nil {
		return nil, translateErr(err, "snapshot ingredients")
	}
	if err := db.Order("id ASC").Find(&snap.MenuItems).Error; err != nil {
		return nil, translateErr(err, "snapshot menu items")
	}
	if err := db.Order("id ASC").Find(&snap.Requirements).Error; err != nil {
		return nil, translateErr(err, "snapshot requirements")
	}
	if err := db.Order("id ASC").Find(&snap.Purchases).Error; err != nil {
		return nil, translateErr(err, "snapshot purchases")
	}
	return snap, nil
}

// Restore replaces every inventory table with the snapshot's rows, keeping
// their ids and purchase timestamps. It runs in one transaction.
func (l *Ledger) Restore(ctx context.Context, snap *Snapshot) error {
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// children first so the deletes never depend on cascades
		for _, model := range []interface{}{
			&models.Purchase{},
			&models.RecipeRequirement{},
			&models.MenuItem{},
			&models.Ingredient{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return translateErr(err, "clear inventory")
			}
		}

		for i := range snap.Ingredients {
			if err := tx.Create(&snap.Ingredients[i]).Error; err != nil {
				return translateErr(err, "restore ingredient")
			}
		}
		for i := range snap.MenuItems {
			if err := tx.Create(&snap.MenuItems[i]).Error; err != nil {
				return translateErr(err, "restore menu item")
			}
		}
		for i := range snap.Requirements {
			if err := tx.Omit(clause.Associations).Create(&snap.Requirements[i]).Error; err != nil {
				return translateErr(err, "restore requirement")
			}
		}
		for i := range snap.Purchases {
			if err := tx.Omit(clause.Associations).Create(&snap.Purchases[i]).Error; err != nil {
				return translateErr(err, "restore purchase")
			}
		}
		return nil
	})
	if err != nil {
		l.log.WithError(err).Error("restore failed")
		return err
	}

	l.log.WithFields(logrus.Fields{
		"ingredients":  len(snap.Ingredients),
		"menu_items":   len(snap.MenuItems),
		"requirements": len(snap.Requirements),
		"purchases":    len(snap.Purchases),
	}).Info("inventory restored")
	return nil
}
