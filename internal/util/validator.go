package util

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	// ErrOutOfRange marks a quantity or price outside its allowed range.
	ErrOutOfRange = errors.New("value out of range")
	// ErrInvalidField marks malformed text input such as an empty name.
	ErrInvalidField = errors.New("invalid field")
)

const (
	MaxNameLen = 100
	MaxUnitLen = 20
)

// 与模型列定义一致：价格 decimal(10,2)，数量 decimal(12,3)
const (
	PriceDigits    = 10
	PriceScale     = 2
	QuantityDigits = 12
	QuantityScale  = 3
)

// ValidateNonNegative 验证数量/价格不能为负数
func ValidateNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative, got %s", ErrOutOfRange, field, v.String())
	}
	return nil
}

// ValidateDecimal 验证非负，且能无损放进 decimal(digits, scale) 列
func ValidateDecimal(field string, v decimal.Decimal, digits, scale int32) error {
	if err := ValidateNonNegative(field, v); err != nil {
		return err
	}
	if !v.Round(scale).Equal(v) {
		return fmt.Errorf("%w: %s allows at most %d decimal places, got %s", ErrOutOfRange, field, scale, v.String())
	}
	limit := decimal.New(1, digits-scale)
	if v.GreaterThanOrEqual(limit) {
		return fmt.Errorf("%w: %s must be less than %s, got %s", ErrOutOfRange, field, limit.String(), v.String())
	}
	return nil
}

// ValidatePrice 价格：非负，最多两位小数
func ValidatePrice(field string, v decimal.Decimal) error {
	return ValidateDecimal(field, v, PriceDigits, PriceScale)
}

// ValidateQuantity 数量：非负，最多三位小数
func ValidateQuantity(field string, v decimal.Decimal) error {
	return ValidateDecimal(field, v, QuantityDigits, QuantityScale)
}

// ValidateName 验证名称（不能为空且长度合理）
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidField)
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		return fmt.Errorf("%w: name too long, max %d characters", ErrInvalidField, MaxNameLen)
	}
	return nil
}

// ValidateUnit checks the free-text stock unit ("kg", "pieces").
func ValidateUnit(unit string) error {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return fmt.Errorf("%w: unit is empty", ErrInvalidField)
	}
	if utf8.RuneCountInString(unit) > MaxUnitLen {
		return fmt.Errorf("%w: unit too long, max %d characters", ErrInvalidField, MaxUnitLen)
	}
	return nil
}

// ValidateDate 验证日期格式（必须为 YYYY-MM-DD）
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	_, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}
