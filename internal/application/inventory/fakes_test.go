package inventory

import (
	"context"

	"github.com/essentials/backend/internal/domain/donation"
	"github.com/essentials/backend/internal/domain/inventory"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/essentials/backend/internal/domain/transfer"
	"github.com/google/uuid"
)

type levelKey struct {
	org  uuid.UUID
	loc  uuid.UUID
	item uuid.UUID
}

// fakeLevelRepo is an in-memory InventoryLevelRepository. Locking is a
// no-op; the service flows under test are single-threaded.
type fakeLevelRepo struct {
	levels map[levelKey]*inventory.InventoryLevel
}

func newFakeLevelRepo() *fakeLevelRepo {
	return &fakeLevelRepo{levels: make(map[levelKey]*inventory.InventoryLevel)}
}

func (r *fakeLevelRepo) seed(organizationID, storageLocationID, itemID uuid.UUID, quantity int) {
	level, _ := inventory.NewInventoryLevel(organizationID, storageLocationID, itemID)
	level.Quantity = quantity
	r.levels[levelKey{organizationID, storageLocationID, itemID}] = level
}

func (r *fakeLevelRepo) FindByTuple(_ context.Context, organizationID, storageLocationID, itemID uuid.UUID) (*inventory.InventoryLevel, error) {
	level, ok := r.levels[levelKey{organizationID, storageLocationID, itemID}]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return level, nil
}

func (r *fakeLevelRepo) FindForUpdate(_ context.Context, organizationID, storageLocationID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]*inventory.InventoryLevel, error) {
	found := make(map[uuid.UUID]*inventory.InventoryLevel)
	for _, itemID := range itemIDs {
		if level, ok := r.levels[levelKey{organizationID, storageLocationID, itemID}]; ok {
			found[itemID] = level
		}
	}
	return found, nil
}

func (r *fakeLevelRepo) GetOrCreateForUpdate(_ context.Context, organizationID, storageLocationID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]*inventory.InventoryLevel, error) {
	found := make(map[uuid.UUID]*inventory.InventoryLevel)
	for _, itemID := range itemIDs {
		key := levelKey{organizationID, storageLocationID, itemID}
		if _, ok := r.levels[key]; !ok {
			level, err := inventory.NewInventoryLevel(organizationID, storageLocationID, itemID)
			if err != nil {
				return nil, err
			}
			r.levels[key] = level
		}
		found[itemID] = r.levels[key]
	}
	return found, nil
}

func (r *fakeLevelRepo) FindByLocation(_ context.Context, organizationID, storageLocationID uuid.UUID) ([]inventory.InventoryLevel, error) {
	levels := make([]inventory.InventoryLevel, 0)
	for key, level := range r.levels {
		if key.org == organizationID && key.loc == storageLocationID {
			levels = append(levels, *level)
		}
	}
	return levels, nil
}

func (r *fakeLevelRepo) Save(_ context.Context, level *inventory.InventoryLevel) error {
	r.levels[levelKey{level.OrganizationID, level.StorageLocationID, level.ItemID}] = level
	return nil
}

func (r *fakeLevelRepo) SaveAll(ctx context.Context, levels []*inventory.InventoryLevel) error {
	for _, level := range levels {
		if err := r.Save(ctx, level); err != nil {
			return err
		}
	}
	return nil
}

// fakeMovementRepo is an in-memory append-only MovementRepository
type fakeMovementRepo struct {
	movements []inventory.Movement
}

func (r *fakeMovementRepo) Append(_ context.Context, movements []inventory.Movement) error {
	r.movements = append(r.movements, movements...)
	return nil
}

func (r *fakeMovementRepo) FindBySource(_ context.Context, sourceType string, sourceID uuid.UUID) ([]inventory.Movement, error) {
	found := make([]inventory.Movement, 0)
	for _, m := range r.movements {
		if m.SourceType == sourceType && m.SourceID == sourceID {
			found = append(found, m)
		}
	}
	return found, nil
}

// fakeDonationRepo is an in-memory DonationRepository
type fakeDonationRepo struct {
	donations map[uuid.UUID]*donation.Donation
}

func newFakeDonationRepo() *fakeDonationRepo {
	return &fakeDonationRepo{donations: make(map[uuid.UUID]*donation.Donation)}
}

func (r *fakeDonationRepo) FindByID(_ context.Context, id uuid.UUID) (*donation.Donation, error) {
	d, ok := r.donations[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return d, nil
}

func (r *fakeDonationRepo) FindAll(_ context.Context, _ shared.Filter) ([]donation.Donation, error) {
	all := make([]donation.Donation, 0, len(r.donations))
	for _, d := range r.donations {
		all = append(all, *d)
	}
	return all, nil
}

func (r *fakeDonationRepo) FindByIDForOrganization(_ context.Context, organizationID, id uuid.UUID) (*donation.Donation, error) {
	d, ok := r.donations[id]
	if !ok || d.OrganizationID != organizationID {
		return nil, shared.ErrNotFound
	}
	return d, nil
}

func (r *fakeDonationRepo) FindAllForOrganization(_ context.Context, organizationID uuid.UUID, _ shared.Filter) ([]donation.Donation, error) {
	all := make([]donation.Donation, 0)
	for _, d := range r.donations {
		if d.OrganizationID == organizationID {
			all = append(all, *d)
		}
	}
	return all, nil
}

func (r *fakeDonationRepo) Save(_ context.Context, d *donation.Donation) error {
	r.donations[d.ID] = d
	return nil
}

func (r *fakeDonationRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.donations, id)
	return nil
}

// fakeTransferRepo is an in-memory TransferRepository
type fakeTransferRepo struct {
	transfers map[uuid.UUID]*transfer.Transfer
}

func newFakeTransferRepo() *fakeTransferRepo {
	return &fakeTransferRepo{transfers: make(map[uuid.UUID]*transfer.Transfer)}
}

func (r *fakeTransferRepo) FindByID(_ context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	t, ok := r.transfers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return t, nil
}

func (r *fakeTransferRepo) FindAll(_ context.Context, _ shared.Filter) ([]transfer.Transfer, error) {
	all := make([]transfer.Transfer, 0, len(r.transfers))
	for _, t := range r.transfers {
		all = append(all, *t)
	}
	return all, nil
}

func (r *fakeTransferRepo) FindByIDForOrganization(_ context.Context, organizationID, id uuid.UUID) (*transfer.Transfer, error) {
	t, ok := r.transfers[id]
	if !ok || t.OrganizationID != organizationID {
		return nil, shared.ErrNotFound
	}
	return t, nil
}

func (r *fakeTransferRepo) FindAllForOrganization(_ context.Context, organizationID uuid.UUID, _ shared.Filter) ([]transfer.Transfer, error) {
	all := make([]transfer.Transfer, 0)
	for _, t := range r.transfers {
		if t.OrganizationID == organizationID {
			all = append(all, *t)
		}
	}
	return all, nil
}

func (r *fakeTransferRepo) Save(_ context.Context, t *transfer.Transfer) error {
	r.transfers[t.ID] = t
	return nil
}

func (r *fakeTransferRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.transfers, id)
	return nil
}
