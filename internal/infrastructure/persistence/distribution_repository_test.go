package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/essentials/backend/internal/domain/distribution"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormDistributionRepository_FindByIDForOrganization(t *testing.T) {
	t.Run("hydrates line items", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormDistributionRepository(db)

		orgID := uuid.New()
		distID := uuid.New()
		itemID := uuid.New()

		distRows := sqlmock.NewRows([]string{
			"id", "organization_id", "partner_id", "storage_location_id",
			"delivery_method", "issued_at", "state",
		}).AddRow(distID, orgID, uuid.New(), uuid.New(), "pick_up", time.Now(), "scheduled")

		lineRows := sqlmock.NewRows([]string{
			"id", "itemizable_id", "itemizable_type", "item_id", "quantity", "unit_name",
		}).AddRow(uuid.New(), distID, "Distribution", itemID, 25, "Pack")

		mock.ExpectQuery(`SELECT \* FROM "distributions"`).
			WillReturnRows(distRows)
		mock.ExpectQuery(`SELECT \* FROM "line_items"`).
			WillReturnRows(lineRows)

		d, err := repo.FindByIDForOrganization(context.Background(), orgID, distID)

		require.NoError(t, err)
		require.Len(t, d.Lines, 1)
		assert.Equal(t, itemID, d.Lines[0].ItemID)
		assert.Equal(t, 25, d.Lines[0].Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing distribution", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormDistributionRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "distributions"`).
			WillReturnError(gorm.ErrRecordNotFound)

		d, err := repo.FindByIDForOrganization(context.Background(), uuid.New(), uuid.New())

		assert.Nil(t, d)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDistributionRepository_FindByQuery(t *testing.T) {
	t.Run("filters on the effective issue date", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormDistributionRepository(db)

		orgID := uuid.New()
		distID := uuid.New()

		distRows := sqlmock.NewRows([]string{
			"id", "organization_id", "partner_id", "storage_location_id",
			"delivery_method", "issued_at", "state",
		}).AddRow(distID, orgID, uuid.New(), uuid.New(), "delivery", time.Now(), "scheduled")

		mock.ExpectQuery(`SELECT \* FROM "distributions" WHERE .*COALESCE\(issued_at, distributions\.created_at\) >= .*`).
			WillReturnRows(distRows)
		mock.ExpectQuery(`SELECT \* FROM "line_items"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "itemizable_id", "itemizable_type", "item_id", "quantity"}))

		q := distribution.Query{}.During(
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		)
		ds, err := repo.FindByQuery(context.Background(), orgID, q)

		require.NoError(t, err)
		require.Len(t, ds, 1)
		assert.Equal(t, distID, ds[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("orders ascending for week listings", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormDistributionRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "distributions" WHERE .* ORDER BY COALESCE\(issued_at, distributions\.created_at\) ASC`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		now := time.Date(2024, 6, 18, 12, 0, 0, 0, time.UTC)
		_, err := repo.FindByQuery(context.Background(), uuid.New(), distribution.Query{}.ThisWeek(now))

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("item predicate checks line items", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormDistributionRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "distributions" WHERE .*EXISTS \(SELECT 1 FROM line_items.*`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByQuery(context.Background(), uuid.New(), distribution.Query{}.ByItem(uuid.New()))

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDistributionRepository_CountByQuery(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormDistributionRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "distributions"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountByQuery(context.Background(), uuid.New(), distribution.Query{})

	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
