package inventory

import (
	"context"

	"github.com/essentials/backend/internal/domain/inventory"
	"github.com/essentials/backend/internal/domain/itemizable"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CommitInbound credits an itemizable's lines to the levels at a storage
// location and appends the matching movements. Must run inside a
// transaction scope together with the itemizable's own save.
func CommitInbound(ctx context.Context, repos TransactionalRepositories, h itemizable.HasLineItems, organizationID, storageLocationID uuid.UUID) error {
	lines := h.LineItems()
	if len(lines) == 0 {
		return nil
	}

	levels, err := repos.LevelRepo().GetOrCreateForUpdate(ctx, organizationID, storageLocationID, lines.ItemIDs())
	if err != nil {
		return err
	}
	for _, line := range lines {
		if err := levels[line.ItemID].Add(line.Quantity); err != nil {
			return err
		}
	}
	if err := saveLevels(ctx, repos, levels); err != nil {
		return err
	}

	movements := make([]inventory.Movement, 0, len(lines))
	for _, line := range lines {
		m, err := inventory.NewMovement(organizationID, storageLocationID, line.ItemID,
			line.Quantity, h.ItemizableType(), h.GetID())
		if err != nil {
			return err
		}
		movements = append(movements, *m)
	}
	return repos.MovementRepo().Append(ctx, movements)
}

// CommitOutbound reserves an itemizable's lines against the levels at a
// storage location: every line must fit or the whole reservation fails
// with the full shortage list, and nothing is deducted. On success the
// matching movements are appended. Must run inside a transaction scope.
func CommitOutbound(ctx context.Context, repos TransactionalRepositories, h itemizable.HasLineItems, organizationID, storageLocationID uuid.UUID) error {
	lines := h.LineItems()
	if len(lines) == 0 {
		return nil
	}

	levels, err := repos.LevelRepo().GetOrCreateForUpdate(ctx, organizationID, storageLocationID, lines.ItemIDs())
	if err != nil {
		return err
	}
	if err := inventory.DeductAll(lines, levels); err != nil {
		return err
	}
	if err := saveLevels(ctx, repos, levels); err != nil {
		return err
	}

	movements, err := inventory.MovementsFor(h, organizationID, storageLocationID)
	if err != nil {
		return err
	}
	return repos.MovementRepo().Append(ctx, movements)
}

// ReverseMovements undoes every movement previously recorded for a
// source, restoring the touched levels exactly and appending the inverse
// records. Used when a committed itemizable is edited or deleted.
func ReverseMovements(ctx context.Context, repos TransactionalRepositories, organizationID uuid.UUID, sourceType string, sourceID uuid.UUID) error {
	movements, err := repos.MovementRepo().FindBySource(ctx, sourceType, sourceID)
	if err != nil {
		return err
	}
	if len(movements) == 0 {
		return nil
	}

	inverses := make([]inventory.Movement, 0, len(movements))
	byLocation := make(map[uuid.UUID][]inventory.Movement)
	for _, m := range movements {
		inv := m.Inverse()
		inverses = append(inverses, inv)
		byLocation[inv.StorageLocationID] = append(byLocation[inv.StorageLocationID], inv)
	}

	for locationID, ms := range byLocation {
		itemIDs := make([]uuid.UUID, 0, len(ms))
		seen := make(map[uuid.UUID]struct{}, len(ms))
		for _, m := range ms {
			if _, ok := seen[m.ItemID]; !ok {
				seen[m.ItemID] = struct{}{}
				itemIDs = append(itemIDs, m.ItemID)
			}
		}

		levels, err := repos.LevelRepo().GetOrCreateForUpdate(ctx, organizationID, locationID, itemIDs)
		if err != nil {
			return err
		}
		for _, m := range ms {
			if err := applySigned(levels[m.ItemID], m.Quantity); err != nil {
				return err
			}
		}
		if err := saveLevels(ctx, repos, levels); err != nil {
			return err
		}
	}

	return repos.MovementRepo().Append(ctx, inverses)
}

func applySigned(level *inventory.InventoryLevel, quantity int) error {
	if level == nil {
		return shared.NewDomainError(shared.CodeNotFound, "Inventory level missing for movement")
	}
	if quantity > 0 {
		return level.Add(quantity)
	}
	return level.Deduct(-quantity)
}

func saveLevels(ctx context.Context, repos TransactionalRepositories, levels map[uuid.UUID]*inventory.InventoryLevel) error {
	all := make([]*inventory.InventoryLevel, 0, len(levels))
	for _, level := range levels {
		all = append(all, level)
	}
	return repos.LevelRepo().SaveAll(ctx, all)
}
