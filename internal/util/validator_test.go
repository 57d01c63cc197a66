package util

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

// TestValidateNonNegative_Valid 测试零和正数
func TestValidateNonNegative_Valid(t *testing.T) {
	testCases := []string{"0", "0.001", "1", "100.5", "9999999.99"}

	for _, s := range testCases {
		v := decimal.RequireFromString(s)
		if err := ValidateNonNegative("quantity", v); err != nil {
			t.Errorf("ValidateNonNegative(%s) error = %v, want nil", s, err)
		}
	}
}

// TestValidateNonNegative_Negative 测试负数（异常）
func TestValidateNonNegative_Negative(t *testing.T) {
	testCases := []string{"-0.01", "-1", "-9999.99"}

	for _, s := range testCases {
		err := ValidateNonNegative("price", decimal.RequireFromString(s))
		if err == nil {
			t.Errorf("ValidateNonNegative(%s) error = nil, want error", s)
			continue
		}
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("ValidateNonNegative(%s) error = %v, want ErrOutOfRange", s, err)
		}
		if !strings.Contains(err.Error(), "price") {
			t.Errorf("error %q should name the field", err)
		}
	}
}

// TestValidateName 测试名称
func TestValidateName(t *testing.T) {
	valid := []string{"flour", "面粉", "Eggs (large)"}
	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) error = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "   ", strings.Repeat("x", MaxNameLen+1)}
	for _, name := range invalid {
		err := ValidateName(name)
		if !errors.Is(err, ErrInvalidField) {
			t.Errorf("ValidateName(%q) error = %v, want ErrInvalidField", name, err)
		}
	}
}

// TestValidateUnit 测试单位
func TestValidateUnit(t *testing.T) {
	for _, unit := range []string{"kg", "liters", "pieces", "克"} {
		if err := ValidateUnit(unit); err != nil {
			t.Errorf("ValidateUnit(%q) error = %v, want nil", unit, err)
		}
	}
	for _, unit := range []string{"", strings.Repeat("u", MaxUnitLen+1)} {
		if err := ValidateUnit(unit); !errors.Is(err, ErrInvalidField) {
			t.Errorf("ValidateUnit(%q) error = %v, want ErrInvalidField", unit, err)
		}
	}
}

// TestValidateDate_Valid 测试有效日期
func TestValidateDate_Valid(t *testing.T) {
	testCases := []string{
		"2024-01-01",
		"2024-12-31",
		"2025-06-15",
	}

	for _, date := range testCases {
		if err := ValidateDate(date); err != nil {
			t.Errorf("ValidateDate(%q) error = %v, want nil", date, err)
		}
	}
}

// TestValidateDate_InvalidFormat 测试无效格式（异常）
func TestValidateDate_InvalidFormat(t *testing.T) {
	testCases := []string{
		"",
		"2024/01/01",
		"01-01-2024",
		"2024-1-1",
		"not-a-date",
		"2024-13-01", // 月份错误
		"2024-01-32", // 日期错误
	}

	for _, date := range testCases {
		if err := ValidateDate(date); err == nil {
			t.Errorf("ValidateDate(%q) error = nil, want error", date)
		}
	}
}

// TestValidatePrice 价格必须能无损存入 decimal(10,2)
func TestValidatePrice(t *testing.T) {
	valid := []string{"0", "5", "5.00", "0.01", "99999999.99", "2.500"}
	for _, s := range valid {
		if err := ValidatePrice("price", decimal.RequireFromString(s)); err != nil {
			t.Errorf("ValidatePrice(%s) error = %v, want nil", s, err)
		}
	}

	invalid := []string{"-1", "2.005", "0.001", "100000000", "12345678901234567.89"}
	for _, s := range invalid {
		if err := ValidatePrice("price", decimal.RequireFromString(s)); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("ValidatePrice(%s) error = %v, want ErrOutOfRange", s, err)
		}
	}
}

// TestValidateQuantity 数量必须能无损存入 decimal(12,3)
func TestValidateQuantity(t *testing.T) {
	valid := []string{"0", "0.001", "0.25", "999999999.999"}
	for _, s := range valid {
		if err := ValidateQuantity("quantity", decimal.RequireFromString(s)); err != nil {
			t.Errorf("ValidateQuantity(%s) error = %v, want nil", s, err)
		}
	}

	invalid := []string{"-0.001", "0.0005", "1000000000", "1.2345"}
	for _, s := range invalid {
		if err := ValidateQuantity("quantity", decimal.RequireFromString(s)); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("ValidateQuantity(%s) error = %v, want ErrOutOfRange", s, err)
		}
	}
}
