package valueobject

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ItemUnit is a value object describing a named packaging unit for an item,
// e.g. a "Pack" of 10 diapers. It is immutable.
type ItemUnit struct {
	name     string
	packSize int
}

// NewItemUnit creates a new ItemUnit.
// Returns an error if the name is empty or the pack size is not positive.
func NewItemUnit(name string, packSize int) (ItemUnit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ItemUnit{}, errors.New("unit name cannot be empty")
	}
	if len(name) > 50 {
		return ItemUnit{}, errors.New("unit name cannot exceed 50 characters")
	}
	if packSize <= 0 {
		return ItemUnit{}, errors.New("pack size must be positive")
	}
	return ItemUnit{name: name, packSize: packSize}, nil
}

// MustNewItemUnit creates an ItemUnit and panics on error.
// Use only when the inputs are known to be valid.
func MustNewItemUnit(name string, packSize int) ItemUnit {
	u, err := NewItemUnit(name, packSize)
	if err != nil {
		panic(err)
	}
	return u
}

// Name returns the unit name, e.g. "Pack"
func (u ItemUnit) Name() string {
	return u.name
}

// PackSize returns how many individual pieces one unit contains
func (u ItemUnit) PackSize() int {
	return u.packSize
}

// IsZero returns true for the zero-value ItemUnit
func (u ItemUnit) IsZero() bool {
	return u.name == "" && u.packSize == 0
}

// Label returns the singular or plural unit label for a quantity:
// "Pack" for 1, "Packs" otherwise.
func (u ItemUnit) Label(quantity int) string {
	if quantity == 1 {
		return u.name
	}
	return u.name + "s"
}

// String returns a display representation, e.g. "Pack (10)"
func (u ItemUnit) String() string {
	return fmt.Sprintf("%s (%d)", u.name, u.packSize)
}

// FormatQuantity renders a line quantity for exports. When a named unit
// applies the label is appended ("1 Pack", "12 Packs"); otherwise the
// bare quantity is returned.
func FormatQuantity(quantity int, unit ItemUnit) string {
	if unit.IsZero() {
		return strconv.Itoa(quantity)
	}
	return fmt.Sprintf("%d %s", quantity, unit.Label(quantity))
}
