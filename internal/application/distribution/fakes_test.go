package distribution

import (
	"context"
	"sort"

	"github.com/essentials/backend/internal/domain/catalog"
	"github.com/essentials/backend/internal/domain/distribution"
	"github.com/essentials/backend/internal/domain/inventory"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type levelKey struct {
	org  uuid.UUID
	loc  uuid.UUID
	item uuid.UUID
}

// fakeLevelRepo is an in-memory InventoryLevelRepository
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

func (r *fakeLevelRepo) quantity(organizationID, storageLocationID, itemID uuid.UUID) int {
	if level, ok := r.levels[levelKey{organizationID, storageLocationID, itemID}]; ok {
		return level.Quantity
	}
	return 0
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

// fakeDistributionRepo is an in-memory DistributionRepository. FindByQuery
// honors the date range, partner, location, item, and state predicates.
type fakeDistributionRepo struct {
	distributions map[uuid.UUID]*distribution.Distribution
}

func newFakeDistributionRepo() *fakeDistributionRepo {
	return &fakeDistributionRepo{distributions: make(map[uuid.UUID]*distribution.Distribution)}
}

func (r *fakeDistributionRepo) FindByID(_ context.Context, id uuid.UUID) (*distribution.Distribution, error) {
	d, ok := r.distributions[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return d, nil
}

func (r *fakeDistributionRepo) FindAll(_ context.Context, _ shared.Filter) ([]distribution.Distribution, error) {
	all := make([]distribution.Distribution, 0, len(r.distributions))
	for _, d := range r.distributions {
		all = append(all, *d)
	}
	return all, nil
}

func (r *fakeDistributionRepo) FindByIDForOrganization(_ context.Context, organizationID, id uuid.UUID) (*distribution.Distribution, error) {
	d, ok := r.distributions[id]
	if !ok || d.OrganizationID != organizationID {
		return nil, shared.ErrNotFound
	}
	return d, nil
}

func (r *fakeDistributionRepo) FindAllForOrganization(_ context.Context, organizationID uuid.UUID, _ shared.Filter) ([]distribution.Distribution, error) {
	all := make([]distribution.Distribution, 0)
	for _, d := range r.distributions {
		if d.OrganizationID == organizationID {
			all = append(all, *d)
		}
	}
	return all, nil
}

func (r *fakeDistributionRepo) FindByQuery(_ context.Context, organizationID uuid.UUID, query distribution.Query) ([]distribution.Distribution, error) {
	matched := make([]distribution.Distribution, 0)
	for _, d := range r.distributions {
		if d.OrganizationID != organizationID {
			continue
		}
		effective := d.IssuedAt
		if effective.IsZero() {
			effective = d.CreatedAt
		}
		if query.Range != nil && !query.Range.Contains(effective) {
			continue
		}
		if query.PartnerID != nil && d.PartnerID != *query.PartnerID {
			continue
		}
		if query.StorageLocationID != nil && d.StorageLocationID != *query.StorageLocationID {
			continue
		}
		if query.State != nil && d.State != *query.State {
			continue
		}
		if query.ItemID != nil && d.Lines.QuantityFor(*query.ItemID) == 0 {
			continue
		}
		matched = append(matched, *d)
	}
	if query.OrderByIssuedAtAsc {
		sort.Slice(matched, func(i, j int) bool {
			return matched[i].IssuedAt.Before(matched[j].IssuedAt)
		})
	}
	return matched, nil
}

func (r *fakeDistributionRepo) FindByPartner(ctx context.Context, organizationID, partnerID uuid.UUID, _ shared.Filter) ([]distribution.Distribution, error) {
	q := distribution.Query{}.ByPartner(partnerID)
	return r.FindByQuery(ctx, organizationID, q)
}

func (r *fakeDistributionRepo) CountByQuery(ctx context.Context, organizationID uuid.UUID, query distribution.Query) (int64, error) {
	ds, err := r.FindByQuery(ctx, organizationID, query)
	if err != nil {
		return 0, err
	}
	return int64(len(ds)), nil
}

func (r *fakeDistributionRepo) Save(_ context.Context, d *distribution.Distribution) error {
	r.distributions[d.ID] = d
	return nil
}

func (r *fakeDistributionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.distributions, id)
	return nil
}

// fakeRequestRepo is an in-memory RequestRepository
type fakeRequestRepo struct {
	requests map[uuid.UUID]*distribution.Request
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[uuid.UUID]*distribution.Request)}
}

func (r *fakeRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*distribution.Request, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return req, nil
}

func (r *fakeRequestRepo) FindAll(_ context.Context, _ shared.Filter) ([]distribution.Request, error) {
	all := make([]distribution.Request, 0, len(r.requests))
	for _, req := range r.requests {
		all = append(all, *req)
	}
	return all, nil
}

func (r *fakeRequestRepo) FindByIDForOrganization(_ context.Context, organizationID, id uuid.UUID) (*distribution.Request, error) {
	req, ok := r.requests[id]
	if !ok || req.OrganizationID != organizationID {
		return nil, shared.ErrNotFound
	}
	return req, nil
}

func (r *fakeRequestRepo) FindAllForOrganization(_ context.Context, organizationID uuid.UUID, _ shared.Filter) ([]distribution.Request, error) {
	all := make([]distribution.Request, 0)
	for _, req := range r.requests {
		if req.OrganizationID == organizationID {
			all = append(all, *req)
		}
	}
	return all, nil
}

func (r *fakeRequestRepo) FindByStatus(_ context.Context, organizationID uuid.UUID, status distribution.RequestStatus, _ shared.Filter) ([]distribution.Request, error) {
	all := make([]distribution.Request, 0)
	for _, req := range r.requests {
		if req.OrganizationID == organizationID && req.Status == status {
			all = append(all, *req)
		}
	}
	return all, nil
}

func (r *fakeRequestRepo) FindByPartner(_ context.Context, organizationID, partnerID uuid.UUID, _ shared.Filter) ([]distribution.Request, error) {
	all := make([]distribution.Request, 0)
	for _, req := range r.requests {
		if req.OrganizationID == organizationID && req.PartnerID == partnerID {
			all = append(all, *req)
		}
	}
	return all, nil
}

func (r *fakeRequestRepo) Save(_ context.Context, req *distribution.Request) error {
	r.requests[req.ID] = req
	return nil
}

func (r *fakeRequestRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.requests, id)
	return nil
}

// MockPartnerRepository is a mock implementation of catalog.PartnerRepository
type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Partner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Partner), args.Error(1)
}

func (m *MockPartnerRepository) FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*catalog.Partner, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Partner), args.Error(1)
}

func (m *MockPartnerRepository) FindAllForOrganization(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]catalog.Partner, error) {
	args := m.Called(ctx, organizationID, filter)
	return args.Get(0).([]catalog.Partner), args.Error(1)
}

func (m *MockPartnerRepository) FindUser(ctx context.Context, userID uuid.UUID) (*catalog.PartnerUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.PartnerUser), args.Error(1)
}

func (m *MockPartnerRepository) Save(ctx context.Context, partner *catalog.Partner) error {
	args := m.Called(ctx, partner)
	return args.Error(0)
}

// MockStorageLocationRepository is a mock implementation of catalog.StorageLocationRepository
type MockStorageLocationRepository struct {
	mock.Mock
}

func (m *MockStorageLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.StorageLocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.StorageLocation), args.Error(1)
}

func (m *MockStorageLocationRepository) FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*catalog.StorageLocation, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.StorageLocation), args.Error(1)
}

func (m *MockStorageLocationRepository) FindAllForOrganization(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]catalog.StorageLocation, error) {
	args := m.Called(ctx, organizationID, filter)
	return args.Get(0).([]catalog.StorageLocation), args.Error(1)
}

func (m *MockStorageLocationRepository) Save(ctx context.Context, location *catalog.StorageLocation) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockStorageLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
