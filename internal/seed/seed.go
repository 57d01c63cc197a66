// Package seed loads a starter inventory from a YAML file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"kitchen-ledger/internal/inventory"
	"kitchen-ledger/internal/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type File struct {
	Ingredients []Ingredient `yaml:"ingredients"`
	Menu        []MenuItem   `yaml:"menu"`
}

type Ingredient struct {
	Name         string `yaml:"name"`
	Quantity     string `yaml:"quantity"`
	Unit         string `yaml:"unit"`
	PricePerUnit string `yaml:"price_per_unit"`
}

type MenuItem struct {
	Name         string        `yaml:"name"`
	Price        string        `yaml:"price"`
	Requirements []Requirement `yaml:"requirements"`
}

type Requirement struct {
	Ingredient string `yaml:"ingredient"`
	Quantity   string `yaml:"quantity"`
}

// Result counts the rows created by Apply.
type Result struct {
	Ingredients  int
	MenuItems    int
	Requirements int
}

// Load reads and parses a seed file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &f, nil
}

// parseDecimal treats an empty string as zero.
func parseDecimal(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s %q: %w", field, s, err)
	}
	return d, nil
}

// Apply creates everything in f that does not exist yet. Rows whose name
// (or ingredient pair) is already present are skipped, so applying the same
// file twice is harmless.
func Apply(ctx context.Context, ledger *inventory.Ledger, f *File) (Result, error) {
	var res Result

	for _, in := range f.Ingredients {
		qty, err := parseDecimal("quantity", in.Quantity)
		if err != nil {
			return res, fmt.Errorf("ingredient %s: %w", in.Name, err)
		}
		price, err := parseDecimal("price_per_unit", in.PricePerUnit)
		if err != nil {
			return res, fmt.Errorf("ingredient %s: %w", in.Name, err)
		}
		_, err = ledger.CreateIngredient(ctx, models.Ingredient{
			Name:         in.Name,
			Quantity:     qty,
			Unit:         in.Unit,
			PricePerUnit: price,
		})
		switch {
		case err == nil:
			res.Ingredients++
		case errors.Is(err, inventory.ErrDuplicate):
			// already seeded
		default:
			return res, fmt.Errorf("ingredient %s: %w", in.Name, err)
		}
	}

	for _, m := range f.Menu {
		price, err := parseDecimal("price", m.Price)
		if err != nil {
			return res, fmt.Errorf("menu item %s: %w", m.Name, err)
		}
		item, err := ledger.CreateMenuItem(ctx, models.MenuItem{Name: m.Name, Price: price})
		switch {
		case err == nil:
			res.MenuItems++
		case errors.Is(err, inventory.ErrDuplicate):
			if item, err = ledger.MenuItemByName(ctx, m.Name); err != nil {
				return res, err
			}
		default:
			return res, fmt.Errorf("menu item %s: %w", m.Name, err)
		}

		for _, r := range m.Requirements {
			qty, err := parseDecimal("quantity", r.Quantity)
			if err != nil {
				return res, fmt.Errorf("menu item %s: %w", m.Name, err)
			}
			ing, err := ledger.IngredientByName(ctx, r.Ingredient)
			if err != nil {
				return res, fmt.Errorf("menu item %s: %w", m.Name, err)
			}
			_, err = ledger.AddRequirement(ctx, item.ID, ing.ID, qty)
			switch {
			case err == nil:
				res.Requirements++
			case errors.Is(err, inventory.ErrDuplicate):
				// already seeded
			default:
				return res, fmt.Errorf("menu item %s: %w", m.Name, err)
			}
		}
	}
	return res, nil
}
