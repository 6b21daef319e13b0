package persistence

import (
	"context"
	"testing"

	"github.com/essentials/backend/internal/domain/inventory"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupLevelTestDB opens an in-memory SQLite database so the level and
// movement repositories can be exercised against a real SQL engine.
// Lock-acquiring methods are excluded here; SQLite has no FOR UPDATE.
func setupLevelTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&inventory.InventoryLevel{}, &inventory.Movement{}))
	return db
}

func TestGormInventoryLevelRepository_SQLiteRoundTrip(t *testing.T) {
	db := setupLevelTestDB(t)
	repo := NewGormInventoryLevelRepository(db)
	ctx := context.Background()

	orgID := uuid.New()
	locationID := uuid.New()
	itemID := uuid.New()

	level, err := inventory.NewInventoryLevel(orgID, locationID, itemID)
	require.NoError(t, err)
	require.NoError(t, level.Add(40))
	require.NoError(t, repo.Save(ctx, level))

	t.Run("finds saved tuple", func(t *testing.T) {
		found, err := repo.FindByTuple(ctx, orgID, locationID, itemID)
		require.NoError(t, err)
		assert.Equal(t, 40, found.Quantity)
		assert.Equal(t, orgID, found.OrganizationID)
	})

	t.Run("updates persist", func(t *testing.T) {
		found, err := repo.FindByTuple(ctx, orgID, locationID, itemID)
		require.NoError(t, err)
		require.NoError(t, found.Deduct(15))
		require.NoError(t, repo.Save(ctx, found))

		again, err := repo.FindByTuple(ctx, orgID, locationID, itemID)
		require.NoError(t, err)
		assert.Equal(t, 25, again.Quantity)
	})

	t.Run("lists all levels at a location", func(t *testing.T) {
		otherItem := uuid.New()
		other, err := inventory.NewInventoryLevel(orgID, locationID, otherItem)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, other))

		levels, err := repo.FindByLocation(ctx, orgID, locationID)
		require.NoError(t, err)
		require.Len(t, levels, 2)

		byItem := make(map[uuid.UUID]int, len(levels))
		for _, l := range levels {
			byItem[l.ItemID] = l.Quantity
		}
		assert.Equal(t, 25, byItem[itemID])
		assert.Equal(t, 0, byItem[otherItem])
	})

	t.Run("unknown tuple maps to not found", func(t *testing.T) {
		_, err := repo.FindByTuple(ctx, orgID, locationID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("levels are organization scoped", func(t *testing.T) {
		_, err := repo.FindByTuple(ctx, uuid.New(), locationID, itemID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormMovementRepository_SQLite(t *testing.T) {
	db := setupLevelTestDB(t)
	repo := NewGormMovementRepository(db)
	ctx := context.Background()

	orgID := uuid.New()
	locationID := uuid.New()
	itemID := uuid.New()
	donationID := uuid.New()

	in, err := inventory.NewMovement(orgID, locationID, itemID, 30, "Donation", donationID)
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, []inventory.Movement{*in}))

	t.Run("finds movements by source", func(t *testing.T) {
		movements, err := repo.FindBySource(ctx, "Donation", donationID)
		require.NoError(t, err)
		require.Len(t, movements, 1)
		assert.Equal(t, 30, movements[0].Quantity)
		assert.Equal(t, itemID, movements[0].ItemID)
	})

	t.Run("inverse movement nets the ledger to zero", func(t *testing.T) {
		require.NoError(t, repo.Append(ctx, []inventory.Movement{in.Inverse()}))

		movements, err := repo.FindBySource(ctx, "Donation", donationID)
		require.NoError(t, err)
		require.Len(t, movements, 2)

		total := 0
		for _, m := range movements {
			total += m.Quantity
		}
		assert.Zero(t, total)
	})

	t.Run("other sources are not returned", func(t *testing.T) {
		movements, err := repo.FindBySource(ctx, "Transfer", donationID)
		require.NoError(t, err)
		assert.Empty(t, movements)
	})
}
