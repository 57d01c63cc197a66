package inventory

import (
	"context"
	"fmt"

	"kitchen-ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MenuItemPatch carries the fields of a menu item update.
type MenuItemPatch struct {
	Name  *string
	Price *decimal.Decimal
}

// MenuView is a menu item together with its availability at read time.
type MenuView struct {
	models.MenuItem
	Available bool `json:"available"`
}

func (l *Ledger) CreateMenuItem(ctx context.Context, in models.MenuItem) (*models.MenuItem, error) {
	in.ID = 0
	if err := in.Validate(); err != nil {
		l.log.WithError(err).WithField("name", in.Name).Warn("menu item rejected")
		return nil, err
	}

	db := l.db.WithContext(ctx)
	if err := l.ensureNameFree(db, &models.MenuItem{}, in.Name, 0); err != nil {
		return nil, err
	}
	if err := db.Create(&in).Error; err != nil {
		return nil, translateErr(err, "create menu item")
	}

	l.log.WithFields(logrus.Fields{"id": in.ID, "name": in.Name}).Info("menu item created")
	return &in, nil
}

func (l *Ledger) GetMenuItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	return getMenuItem(l.db.WithContext(ctx), id)
}

func getMenuItem(db *gorm.DB, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := db.First(&item, id).Error; err != nil {
		return nil, translateErr(err, fmt.Sprintf("menu item %d", id))
	}
	return &item, nil
}

// ListMenuItems returns every menu item with its current availability.
// Requirements for the whole menu are loaded in one joined query.
func (l *Ledger) ListMenuItems(ctx context.Context) ([]MenuView, error) {
	db := l.db.WithContext(ctx)

	var items []models.MenuItem
	if err := db.Order("name ASC").Find(&items).Error; err != nil {
		return nil, translateErr(err, "list menu items")
	}
	if len(items) == 0 {
		return []MenuView{}, nil
	}

	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}

	var reqs []models.RecipeRequirement
	if err := db.Joins("Ingredient").
		Where("recipe_requirements.menu_item_id IN ?", ids).
		Find(&reqs).Error; err != nil {
		return nil, translateErr(err, "list requirements")
	}

	byItem := make(map[uint][]models.RecipeRequirement, len(items))
	for _, r := range reqs {
		byItem[r.MenuItemID] = append(byItem[r.MenuItemID], r)
	}

	out := make([]MenuView, 0, len(items))
	for _, it := range items {
		out = append(out, MenuView{MenuItem: it, Available: allEnough(byItem[it.ID])})
	}
	return out, nil
}

func (l *Ledger) UpdateMenuItem(ctx context.Context, id uint, patch MenuItemPatch) (*models.MenuItem, error) {
	var out *models.MenuItem
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := getMenuItem(tx, id)
		if err != nil {
			return err
		}
		if patch.Name != nil {
			item.Name = *patch.Name
		}
		if patch.Price != nil {
			item.Price = *patch.Price
		}
		if err := item.Validate(); err != nil {
			return err
		}
		if patch.Name != nil {
			if err := l.ensureNameFree(tx, &models.MenuItem{}, item.Name, item.ID); err != nil {
				return err
			}
		}
		if err := tx.Save(item).Error; err != nil {
			return translateErr(err, "update menu item")
		}
		out = item
		return nil
	})
	if err != nil {
		l.log.WithError(err).WithField("id", id).Warn("menu item update failed")
		return nil, err
	}

	l.log.WithFields(logrus.Fields{"id": out.ID, "price": out.Price.String()}).Info("menu item updated")
	return out, nil
}

// DeleteMenuItem removes the menu item together with its recipe
// requirements and purchase history.
func (l *Ledger) DeleteMenuItem(ctx context.Context, id uint) error {
	res := l.db.WithContext(ctx).Delete(&models.MenuItem{}, id)
	if res.Error != nil {
		return translateErr(res.Error, "delete menu item")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("menu item %d: %w", id, ErrNotFound)
	}

	l.log.WithField("id", id).Info("menu item deleted")
	return nil
}

// MenuItemByName looks a menu item up by its unique name.
func (l *Ledger) MenuItemByName(ctx context.Context, name string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := l.db.WithContext(ctx).Where("name = ?", name).First(&item).Error; err != nil {
		return nil, translateErr(err, fmt.Sprintf("menu item %q", name))
	}
	return &item, nil
}
