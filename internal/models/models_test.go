package models

import (
	"errors"
	"testing"
	"time"

	"kitchen-ledger/internal/util"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestStringers(t *testing.T) {
	flour := Ingredient{Name: "flour", Quantity: d("10"), Unit: "kg"}
	bread := MenuItem{Name: "bread", Price: d("5")}
	req := RecipeRequirement{MenuItem: bread, Ingredient: flour, Quantity: d("2")}
	bought := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := Purchase{MenuItem: bread, CreatedAt: bought}

	cases := []struct {
		got, want string
	}{
		{flour.String(), "flour (10 kg)"},
		{bread.String(), "bread ($5.00)"},
		{req.String(), "bread requires 2 kg of flour"},
		{p.String(), "bread purchased at 2024-03-01T12:00:00Z"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("String() = %q, want %q", tc.got, tc.want)
		}
	}
}

func TestRecipeRequirement_Enough(t *testing.T) {
	cases := []struct {
		onHand, need string
		enough       bool
		shortfall    string
	}{
		{"10", "2", true, "0"},
		{"2", "2", true, "0"},
		{"1", "2", false, "1"},
		{"0", "0", true, "0"},
		{"0.25", "0.3", false, "0.05"},
	}
	for _, tc := range cases {
		r := RecipeRequirement{
			Quantity:   d(tc.need),
			Ingredient: Ingredient{Quantity: d(tc.onHand)},
		}
		if r.Enough() != tc.enough {
			t.Errorf("Enough(%s on hand, %s needed) = %v", tc.onHand, tc.need, r.Enough())
		}
		if !r.Shortfall().Equal(d(tc.shortfall)) {
			t.Errorf("Shortfall(%s on hand, %s needed) = %s, want %s", tc.onHand, tc.need, r.Shortfall(), tc.shortfall)
		}
	}
}

func TestIngredient_Validate(t *testing.T) {
	ok := Ingredient{Name: "  milk ", Quantity: d("1"), Unit: " liters", PricePerUnit: d("1.10")}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate error = %v", err)
	}
	if ok.Name != "milk" || ok.Unit != "liters" {
		t.Errorf("Validate 应去掉首尾空格: %q %q", ok.Name, ok.Unit)
	}

	bad := []Ingredient{
		{Name: "", Unit: "kg"},
		{Name: "x", Unit: ""},
		{Name: "x", Unit: "kg", Quantity: d("-1")},
		{Name: "x", Unit: "kg", PricePerUnit: d("-1")},
	}
	for _, ing := range bad {
		err := ing.Validate()
		if !errors.Is(err, util.ErrInvalidField) && !errors.Is(err, util.ErrOutOfRange) {
			t.Errorf("Validate(%+v) error = %v", ing, err)
		}
	}
}

func TestSession_Active(t *testing.T) {
	now := time.Now()

	if !(&Session{ExpiresAt: now.Add(time.Hour)}).Active(now) {
		t.Error("未过期会话应有效")
	}
	if (&Session{ExpiresAt: now.Add(-time.Second)}).Active(now) {
		t.Error("过期会话应无效")
	}
	if (&Session{ExpiresAt: now.Add(time.Hour), Revoked: true}).Active(now) {
		t.Error("已注销会话应无效")
	}
}
