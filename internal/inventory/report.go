package inventory

import (
	"context"
	"sort"
	"time"

	"kitchen-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// SalesLine aggregates the purchases of one menu item.
type SalesLine struct {
	MenuItemID uint            `json:"menu_item_id"`
	Name       string          `json:"name"`
	Sold       int64           `json:"sold"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	Revenue    decimal.Decimal `json:"revenue"`
	Cost       decimal.Decimal `json:"cost"`
	Profit     decimal.Decimal `json:"profit"`
}

// SalesReport totals purchases in [Start, End). Costs use current
// ingredient prices.
type SalesReport struct {
	Start   time.Time       `json:"start"`
	End     time.Time       `json:"end"`
	Lines   []SalesLine     `json:"lines"`
	Sold    int64           `json:"sold"`
	Revenue decimal.Decimal `json:"revenue"`
	Cost    decimal.Decimal `json:"cost"`
	Profit  decimal.Decimal `json:"profit"`
}

// UnitCost is the ingredient cost of one sale of the menu item.
func UnitCost(reqs []models.RecipeRequirement) decimal.Decimal {
	total := decimal.Zero
	for i := range reqs {
		total = total.Add(reqs[i].Quantity.Mul(reqs[i].Ingredient.PricePerUnit))
	}
	return total
}

// SalesReport builds the revenue, cost and profit summary for the window.
// A zero Start or End leaves that side open.
func (l *Ledger) SalesReport(ctx context.Context, start, end time.Time) (*SalesReport, error) {
	db := l.db.WithContext(ctx)

	type soldRow struct {
		MenuItemID uint
		Sold       int64
	}
	q := db.Model(&models.Purchase{}).Select("menu_item_id, COUNT(*) AS sold")
	if !start.IsZero() {
		q = q.Where("created_at >= ?", start)
	}
	if !end.IsZero() {
		q = q.Where("created_at < ?", end)
	}
	var rows []soldRow
	if err := q.Group("menu_item_id").Scan(&rows).Error; err != nil {
		return nil, translateErr(err, "aggregate purchases")
	}

	report := &SalesReport{
		Start:   start,
		End:     end,
		Lines:   make([]SalesLine, 0, len(rows)),
		Revenue: decimal.Zero,
		Cost:    decimal.Zero,
		Profit:  decimal.Zero,
	}
	for _, row := range rows {
		reqs, err := requirementsFor(db, row.MenuItemID)
		if err != nil {
			return nil, err
		}
		item, err := getMenuItem(db, row.MenuItemID)
		if err != nil {
			return nil, err
		}

		sold := decimal.NewFromInt(row.Sold)
		unitCost := UnitCost(reqs)
		line := SalesLine{
			MenuItemID: item.ID,
			Name:       item.Name,
			Sold:       row.Sold,
			UnitPrice:  item.Price,
			UnitCost:   unitCost,
			Revenue:    item.Price.Mul(sold),
			Cost:       unitCost.Mul(sold),
		}
		line.Profit = line.Revenue.Sub(line.Cost)

		report.Lines = append(report.Lines, line)
		report.Sold += row.Sold
		report.Revenue = report.Revenue.Add(line.Revenue)
		report.Cost = report.Cost.Add(line.Cost)
	}
	report.Profit = report.Revenue.Sub(report.Cost)

	sort.Slice(report.Lines, func(i, j int) bool {
		a, b := report.Lines[i], report.Lines[j]
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		return a.MenuItemID < b.MenuItemID
	})
	return report, nil
}
