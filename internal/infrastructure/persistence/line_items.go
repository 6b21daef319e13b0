package persistence

import (
	"context"

	"github.com/essentials/backend/internal/domain/itemizable"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// loadLines fetches the line items for one itemizable
func loadLines(ctx context.Context, db *gorm.DB, itemizableType string, itemizableID uuid.UUID) (itemizable.Lines, error) {
	var lines itemizable.Lines
	if err := db.WithContext(ctx).
		Where("itemizable_type = ? AND itemizable_id = ?", itemizableType, itemizableID).
		Order("created_at ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// loadLinesForAll fetches line items for many itemizables in one query,
// keyed by parent ID. Rows keep their insertion order per parent.
func loadLinesForAll(ctx context.Context, db *gorm.DB, itemizableType string, itemizableIDs []uuid.UUID) (map[uuid.UUID]itemizable.Lines, error) {
	byParent := make(map[uuid.UUID]itemizable.Lines, len(itemizableIDs))
	if len(itemizableIDs) == 0 {
		return byParent, nil
	}

	var lines []itemizable.LineItem
	if err := db.WithContext(ctx).
		Where("itemizable_type = ? AND itemizable_id IN ?", itemizableType, itemizableIDs).
		Order("created_at ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}

	for _, line := range lines {
		byParent[line.ItemizableID] = append(byParent[line.ItemizableID], line)
	}
	return byParent, nil
}

// replaceLines rewrites the stored line set for an itemizable to match
// the in-memory collection. Runs inside the caller's transaction so the
// parent row and its lines commit together.
func replaceLines(ctx context.Context, db *gorm.DB, h itemizable.HasLineItems) error {
	if err := deleteLines(ctx, db, h.ItemizableType(), h.GetID()); err != nil {
		return err
	}

	lines := h.LineItems()
	if len(lines) == 0 {
		return nil
	}
	// Re-bind the parent reference; lines built before the aggregate was
	// assigned an ID carry a nil parent.
	for i := range lines {
		lines[i].ItemizableID = h.GetID()
		lines[i].ItemizableTyp = h.ItemizableType()
	}
	return db.WithContext(ctx).Create(&lines).Error
}

// deleteLines removes all line items belonging to an itemizable
func deleteLines(ctx context.Context, db *gorm.DB, itemizableType string, itemizableID uuid.UUID) error {
	return db.WithContext(ctx).
		Where("itemizable_type = ? AND itemizable_id = ?", itemizableType, itemizableID).
		Delete(&itemizable.LineItem{}).Error
}
