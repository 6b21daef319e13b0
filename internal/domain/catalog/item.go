package catalog

import (
	"time"

	"github.com/essentials/backend/internal/domain/shared"
	"github.com/essentials/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ReportingCategory classifies an item for aggregate reporting
type ReportingCategory string

const (
	CategoryDisposableDiapers ReportingCategory = "disposable_diapers"
	CategoryClothDiapers      ReportingCategory = "cloth_diapers"
	CategoryTampons           ReportingCategory = "tampons"
	CategoryPads              ReportingCategory = "pads"
	CategoryPeriodLiners      ReportingCategory = "period_liners"
	CategoryPeriodOther       ReportingCategory = "period_other"
	CategoryAdultIncontinence ReportingCategory = "adult_incontinence"
	CategoryOther             ReportingCategory = "other"
)

// IsValid checks if the category is a known ReportingCategory
func (c ReportingCategory) IsValid() bool {
	switch c {
	case CategoryDisposableDiapers, CategoryClothDiapers, CategoryTampons,
		CategoryPads, CategoryPeriodLiners, CategoryPeriodOther,
		CategoryAdultIncontinence, CategoryOther:
		return true
	}
	return false
}

// String returns the string representation of the category
func (c ReportingCategory) String() string {
	return string(c)
}

// IsDiaper returns true for the diaper category set
func (c ReportingCategory) IsDiaper() bool {
	return c == CategoryDisposableDiapers || c == CategoryClothDiapers
}

// IsPeriodSupply returns true for the period-supplies category set
func (c ReportingCategory) IsPeriodSupply() bool {
	switch c {
	case CategoryTampons, CategoryPads, CategoryPeriodLiners, CategoryPeriodOther:
		return true
	}
	return false
}

// DiaperCategories returns the categories counted as diapers
func DiaperCategories() []ReportingCategory {
	return []ReportingCategory{CategoryDisposableDiapers, CategoryClothDiapers}
}

// PeriodSupplyCategories returns the categories counted as period supplies
func PeriodSupplyCategories() []ReportingCategory {
	return []ReportingCategory{CategoryTampons, CategoryPads, CategoryPeriodLiners, CategoryPeriodOther}
}

// ItemUnit is a named packaging unit definition attached to an item,
// e.g. "Pack" of 10. Stored as a child row of the item.
type ItemUnit struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"size:50;not null"`
	PackSize  int       `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (ItemUnit) TableName() string {
	return "item_units"
}

// ToValueObject converts the row into the immutable unit value object
func (u ItemUnit) ToValueObject() (valueobject.ItemUnit, error) {
	return valueobject.NewItemUnit(u.Name, u.PackSize)
}

// Item is a catalog entry owned by an organization. Identity is immutable;
// quantities live in the inventory ledger.
type Item struct {
	shared.OrgAggregateRoot
	Name              string            `gorm:"size:255;not null"`
	ReportingCategory ReportingCategory `gorm:"size:50;not null;default:'other'"`
	Active            bool              `gorm:"not null;default:true"`

	Units []ItemUnit `gorm:"foreignKey:ItemID;references:ID"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new catalog item
func NewItem(organizationID uuid.UUID, name string, category ReportingCategory) (*Item, error) {
	if organizationID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Organization ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Item name cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Unknown reporting category")
	}

	return &Item{
		OrgAggregateRoot:  shared.NewOrgAggregateRoot(organizationID),
		Name:              name,
		ReportingCategory: category,
		Active:            true,
		Units:             make([]ItemUnit, 0),
	}, nil
}

// AddUnit attaches a packaging unit definition to the item
func (i *Item) AddUnit(name string, packSize int) error {
	if _, err := valueobject.NewItemUnit(name, packSize); err != nil {
		return shared.NewDomainError(shared.CodeInvalidInput, err.Error())
	}
	for _, u := range i.Units {
		if u.Name == name {
			return shared.NewDomainError(shared.CodeAlreadyExists, "Unit already defined for this item")
		}
	}

	now := time.Now()
	i.Units = append(i.Units, ItemUnit{
		ID:        uuid.New(),
		ItemID:    i.ID,
		Name:      name,
		PackSize:  packSize,
		CreatedAt: now,
		UpdatedAt: now,
	})
	i.UpdatedAt = now
	return nil
}

// UnitNamed returns the unit definition with the given name, if any
func (i *Item) UnitNamed(name string) (valueobject.ItemUnit, bool) {
	for _, u := range i.Units {
		if u.Name == name {
			vo, err := u.ToValueObject()
			if err != nil {
				return valueobject.ItemUnit{}, false
			}
			return vo, true
		}
	}
	return valueobject.ItemUnit{}, false
}

// Deactivate hides the item from new intake without destroying history
func (i *Item) Deactivate() {
	i.Active = false
	i.UpdatedAt = time.Now()
}
