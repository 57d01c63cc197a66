package inventory

import (
	"context"
	"fmt"
	"time"

	"kitchen-ledger/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PurchaseFilter narrows ListPurchases. Zero values mean "no filter";
// End is exclusive.
type PurchaseFilter struct {
	MenuItemID uint
	Start      time.Time
	End        time.Time
	Limit      int
	Offset     int
}

// Sale is the outcome of Sell.
type Sale struct {
	Purchase models.Purchase     `json:"purchase"`
	Consumed []RequirementStatus `json:"consumed"`
}

// RecordPurchase appends a purchase of the menu item. The timestamp is
// assigned by storage at insert; callers cannot supply one.
func (l *Ledger) RecordPurchase(ctx context.Context, menuItemID uint) (*models.Purchase, error) {
	var p models.Purchase
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := recordPurchase(tx, menuItemID)
		if err != nil {
			return err
		}
		p = *created
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.log.WithFields(logrus.Fields{"id": p.ID, "menu_item_id": menuItemID}).Info("purchase recorded")
	return &p, nil
}

func recordPurchase(tx *gorm.DB, menuItemID uint) (*models.Purchase, error) {
	item, err := getMenuItem(tx, menuItemID)
	if err != nil {
		return nil, err
	}
	p := models.Purchase{MenuItemID: item.ID}
	if err := tx.Omit(clause.Associations).Create(&p).Error; err != nil {
		return nil, translateErr(err, "record purchase")
	}
	p.MenuItem = *item
	return &p, nil
}

func (l *Ledger) GetPurchase(ctx context.Context, id uint) (*models.Purchase, error) {
	var p models.Purchase
	if err := l.db.WithContext(ctx).Joins("MenuItem").
		Where("purchases.id = ?", id).
		First(&p).Error; err != nil {
		return nil, translateErr(err, fmt.Sprintf("purchase %d", id))
	}
	return &p, nil
}

// ListPurchases returns matching purchases newest first plus the total
// number of matches before paging.
func (l *Ledger) ListPurchases(ctx context.Context, f PurchaseFilter) ([]models.Purchase, int64, error) {
	base := l.db.WithContext(ctx).Model(&models.Purchase{})
	if f.MenuItemID != 0 {
		base = base.Where("purchases.menu_item_id = ?", f.MenuItemID)
	}
	if !f.Start.IsZero() {
		base = base.Where("purchases.created_at >= ?", f.Start)
	}
	if !f.End.IsZero() {
		base = base.Where("purchases.created_at < ?", f.End)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translateErr(err, "count purchases")
	}

	q := base.Session(&gorm.Session{}).Joins("MenuItem").
		Order("purchases.created_at DESC, purchases.id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	var list []models.Purchase
	if err := q.Find(&list).Error; err != nil {
		return nil, 0, translateErr(err, "list purchases")
	}
	return list, total, nil
}

// Sell checks availability, deducts every requirement from stock and
// records the purchase in one transaction. When any ingredient is short
// nothing is changed and a *StockError is returned.
func (l *Ledger) Sell(ctx context.Context, menuItemID uint) (*Sale, error) {
	var sale Sale
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reqs, err := requirementsFor(tx, menuItemID)
		if err != nil {
			return err
		}

		var short []RequirementStatus
		for i := range reqs {
			if !reqs[i].Enough() {
				short = append(short, statusOf(&reqs[i]))
			}
		}
		if len(short) > 0 {
			return &StockError{MenuItem: reqs[0].MenuItem.Name, Short: short}
		}

		consumed := make([]RequirementStatus, 0, len(reqs))
		for i := range reqs {
			r := &reqs[i]
			// relative to the row's current value, re-checked by the guard;
			// ROUND keeps sqlite's REAL arithmetic at the column scale
			res := tx.Model(&models.Ingredient{}).
				Where("id = ? AND quantity >= ?", r.IngredientID, r.Quantity).
				UpdateColumns(map[string]interface{}{
					"quantity":   gorm.Expr("ROUND(quantity - ?, 3)", r.Quantity),
					"updated_at": time.Now(),
				})
			if res.Error != nil {
				return translateErr(res.Error, "deduct stock")
			}
			if res.RowsAffected == 0 {
				return &StockError{MenuItem: r.MenuItem.Name, Short: []RequirementStatus{statusOf(r)}}
			}
			ing, err := getIngredient(tx, r.IngredientID)
			if err != nil {
				return err
			}
			st := statusOf(r)
			st.OnHand = ing.Quantity
			consumed = append(consumed, st)
		}

		p, err := recordPurchase(tx, menuItemID)
		if err != nil {
			return err
		}
		sale = Sale{Purchase: *p, Consumed: consumed}
		return nil
	})
	if err != nil {
		l.log.WithError(err).WithField("menu_item_id", menuItemID).Warn("sale rejected")
		return nil, err
	}

	l.log.WithFields(logrus.Fields{
		"purchase_id":  sale.Purchase.ID,
		"menu_item_id": menuItemID,
		"ingredients":  len(sale.Consumed),
	}).Info("sale completed")
	return &sale, nil
}
