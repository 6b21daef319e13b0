package handler

import (
	"context"
	"sync"

	"github.com/essentials/backend/internal/domain/donation"
	"github.com/essentials/backend/internal/domain/inventory"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/essentials/backend/internal/domain/transfer"
	"github.com/google/uuid"
)

type levelKey struct {
	location uuid.UUID
	item     uuid.UUID
}

type memLevelRepo struct {
	mu     sync.Mutex
	levels map[levelKey]*inventory.InventoryLevel
}

func newMemLevelRepo() *memLevelRepo {
	return &memLevelRepo{levels: make(map[levelKey]*inventory.InventoryLevel)}
}

func (r *memLevelRepo) FindByTuple(_ context.Context, _, storageLocationID, itemID uuid.UUID) (*inventory.InventoryLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if level, ok := r.levels[levelKey{storageLocationID, itemID}]; ok {
		return level, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memLevelRepo) FindForUpdate(_ context.Context, _, storageLocationID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]*inventory.InventoryLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make(map[uuid.UUID]*inventory.InventoryLevel)
	for _, itemID := range itemIDs {
		if level, ok := r.levels[levelKey{storageLocationID, itemID}]; ok {
			result[itemID] = level
		}
	}
	return result, nil
}

func (r *memLevelRepo) GetOrCreateForUpdate(_ context.Context, organizationID, storageLocationID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]*inventory.InventoryLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make(map[uuid.UUID]*inventory.InventoryLevel)
	for _, itemID := range itemIDs {
		key := levelKey{storageLocationID, itemID}
		if _, ok := r.levels[key]; !ok {
			level, err := inventory.NewInventoryLevel(organizationID, storageLocationID, itemID)
			if err != nil {
				return nil, err
			}
			r.levels[key] = level
		}
		result[itemID] = r.levels[key]
	}
	return result, nil
}

func (r *memLevelRepo) FindByLocation(_ context.Context, _, storageLocationID uuid.UUID) ([]inventory.InventoryLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []inventory.InventoryLevel
	for key, level := range r.levels {
		if key.location == storageLocationID {
			out = append(out, *level)
		}
	}
	return out, nil
}

func (r *memLevelRepo) Save(_ context.Context, level *inventory.InventoryLevel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.levels[levelKey{level.StorageLocationID, level.ItemID}] = level
	return nil
}

func (r *memLevelRepo) SaveAll(ctx context.Context, levels []*inventory.InventoryLevel) error {
	for _, level := range levels {
		if err := r.Save(ctx, level); err != nil {
			return err
		}
	}
	return nil
}

type memMovementRepo struct {
	mu        sync.Mutex
	movements []inventory.Movement
}

func (r *memMovementRepo) Append(_ context.Context, movements []inventory.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = append(r.movements, movements...)
	return nil
}

func (r *memMovementRepo) FindBySource(_ context.Context, sourceType string, sourceID uuid.UUID) ([]inventory.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []inventory.Movement
	for _, m := range r.movements {
		if m.SourceType == sourceType && m.SourceID == sourceID {
			out = append(out, m)
		}
	}
	return out, nil
}

type memDonationRepo struct {
	mu        sync.Mutex
	donations map[uuid.UUID]*donation.Donation
}

func newMemDonationRepo() *memDonationRepo {
	return &memDonationRepo{donations: make(map[uuid.UUID]*donation.Donation)}
}

func (r *memDonationRepo) FindByID(_ context.Context, id uuid.UUID) (*donation.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.donations[id]; ok {
		return d, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memDonationRepo) FindByIDForOrganization(_ context.Context, organizationID, id uuid.UUID) (*donation.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.donations[id]; ok && d.OrganizationID == organizationID {
		return d, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memDonationRepo) FindAll(_ context.Context, _ shared.Filter) ([]donation.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []donation.Donation
	for _, d := range r.donations {
		out = append(out, *d)
	}
	return out, nil
}

func (r *memDonationRepo) FindAllForOrganization(_ context.Context, organizationID uuid.UUID, _ shared.Filter) ([]donation.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []donation.Donation
	for _, d := range r.donations {
		if d.OrganizationID == organizationID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *memDonationRepo) Save(_ context.Context, d *donation.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.donations[d.ID] = d
	return nil
}

func (r *memDonationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.donations[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.donations, id)
	return nil
}

type memTransferRepo struct {
	mu        sync.Mutex
	transfers map[uuid.UUID]*transfer.Transfer
}

func newMemTransferRepo() *memTransferRepo {
	return &memTransferRepo{transfers: make(map[uuid.UUID]*transfer.Transfer)}
}

func (r *memTransferRepo) FindByID(_ context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.transfers[id]; ok {
		return t, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memTransferRepo) FindByIDForOrganization(_ context.Context, organizationID, id uuid.UUID) (*transfer.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.transfers[id]; ok && t.OrganizationID == organizationID {
		return t, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memTransferRepo) FindAll(_ context.Context, _ shared.Filter) ([]transfer.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []transfer.Transfer
	for _, t := range r.transfers {
		out = append(out, *t)
	}
	return out, nil
}

func (r *memTransferRepo) FindAllForOrganization(_ context.Context, organizationID uuid.UUID, _ shared.Filter) ([]transfer.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []transfer.Transfer
	for _, t := range r.transfers {
		if t.OrganizationID == organizationID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memTransferRepo) Save(_ context.Context, t *transfer.Transfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transfers[t.ID] = t
	return nil
}

func (r *memTransferRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transfers[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.transfers, id)
	return nil
}
