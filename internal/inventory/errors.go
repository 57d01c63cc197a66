package inventory

import (
	"errors"
	"fmt"
	"strings"

	"kitchen-ledger/internal/util"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a referenced ingredient, menu item,
	// requirement or purchase does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned for a repeated ingredient or menu item name,
	// or a second requirement for the same (menu item, ingredient) pair.
	ErrDuplicate = errors.New("record already exists")
	// ErrInsufficientStock is returned by Sell when a requirement is short.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// IsValidation helps callers distinguish rejected input from infrastructure failures.
func IsValidation(err error) bool {
	return errors.Is(err, util.ErrOutOfRange) || errors.Is(err, util.ErrInvalidField)
}

// StockError lists the requirements that blocked a sale.
type StockError struct {
	MenuItem string
	Short    []RequirementStatus
}

func (e *StockError) Error() string {
	names := make([]string, 0, len(e.Short))
	for _, s := range e.Short {
		names = append(names, fmt.Sprintf("%s (short %s %s)", s.Ingredient, s.Shortfall.String(), s.Unit))
	}
	return fmt.Sprintf("%s: %s: %s", ErrInsufficientStock, e.MenuItem, strings.Join(names, ", "))
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// translateErr maps storage errors onto the ledger's error kinds. The
// string checks cover drivers that do not implement gorm's error translator.
func translateErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	msg := err.Error()
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "Duplicate entry") {
		return fmt.Errorf("%s: %w", what, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", what, err)
}
