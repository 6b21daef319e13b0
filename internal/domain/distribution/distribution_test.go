package distribution

import (
	"testing"
	"time"

	"github.com/essentials/backend/internal/domain/shared"
	"github.com/essentials/backend/internal/domain/shared/clock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDistribution(t *testing.T) *Distribution {
	d, err := NewDistribution(uuid.New(), uuid.New(), uuid.New(), DeliveryPickUp)
	require.NoError(t, err)
	d.ClearDomainEvents()
	return d
}

func TestNewDistribution(t *testing.T) {
	t.Run("starts scheduled", func(t *testing.T) {
		d, err := NewDistribution(uuid.New(), uuid.New(), uuid.New(), DeliveryDelivery)
		require.NoError(t, err)
		assert.Equal(t, StateScheduled, d.State)
		assert.Empty(t, d.Lines)

		events := d.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventDistributionCreated, events[0].EventType())
	})

	t.Run("rejects missing references", func(t *testing.T) {
		_, err := NewDistribution(uuid.Nil, uuid.New(), uuid.New(), DeliveryPickUp)
		assert.Error(t, err)
		_, err = NewDistribution(uuid.New(), uuid.Nil, uuid.New(), DeliveryPickUp)
		assert.Error(t, err)
		_, err = NewDistribution(uuid.New(), uuid.New(), uuid.Nil, DeliveryPickUp)
		assert.Error(t, err)
	})

	t.Run("rejects unknown delivery method", func(t *testing.T) {
		_, err := NewDistribution(uuid.New(), uuid.New(), uuid.New(), DeliveryMethod("carrier_pigeon"))
		require.Error(t, err)
		assert.Equal(t, shared.CodeInvalidInput, shared.ErrorCode(err))
	})
}

func TestDistribution_Validate_IssuedAtWindow(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		issuedAt time.Time
		wantCode string
	}{
		{"today is fine", now, ""},
		{"one year out is fine", now.AddDate(1, 0, 0), ""},
		{"last day of 1999 is too old", time.Date(1999, time.December, 31, 0, 0, 0, 0, time.UTC), shared.CodeInvalidDate},
		{"first day of 2000 is fine", time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC), ""},
		{"two years out is too far", now.AddDate(2, 0, 0), shared.CodeInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := createTestDistribution(t)
			d.IssuedAt = tt.issuedAt
			err := d.Validate(now)
			if tt.wantCode == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, shared.ErrorCode(err))
			}
		})
	}
}

func TestDistribution_Validate_ShippingCost(t *testing.T) {
	now := time.Now()

	t.Run("negative cost on shipped fails", func(t *testing.T) {
		d := createTestDistribution(t)
		d.DeliveryMethod = DeliveryShipped
		cost := decimal.NewFromFloat(-1.50)
		d.ShippingCost = &cost
		d.IssuedAt = now

		err := d.Validate(now)
		require.Error(t, err)
		assert.Equal(t, shared.CodeInvalidShippingCost, shared.ErrorCode(err))
	})

	t.Run("zero cost on shipped is fine", func(t *testing.T) {
		d := createTestDistribution(t)
		d.DeliveryMethod = DeliveryShipped
		cost := decimal.Zero
		d.ShippingCost = &cost
		d.IssuedAt = now

		assert.NoError(t, d.Validate(now))
	})
}

func TestDistribution_Normalize(t *testing.T) {
	clk := clock.NewFixed(time.Date(2024, time.June, 15, 9, 30, 0, 0, time.UTC))

	t.Run("defaults a missing issued at to now", func(t *testing.T) {
		d := createTestDistribution(t)
		d.Normalize(clk)
		assert.Equal(t, clk.Instant, d.IssuedAt)
	})

	t.Run("keeps an explicit issued at", func(t *testing.T) {
		d := createTestDistribution(t)
		explicit := clk.Instant.AddDate(0, 1, 0)
		d.IssuedAt = explicit
		d.Normalize(clk)
		assert.Equal(t, explicit, d.IssuedAt)
	})

	t.Run("clears shipping cost unless shipped", func(t *testing.T) {
		cost := decimal.NewFromFloat(12.50)

		d := createTestDistribution(t)
		d.DeliveryMethod = DeliveryPickUp
		d.ShippingCost = &cost
		d.Normalize(clk)
		assert.Nil(t, d.ShippingCost)

		d = createTestDistribution(t)
		d.DeliveryMethod = DeliveryShipped
		d.ShippingCost = &cost
		d.Normalize(clk)
		require.NotNil(t, d.ShippingCost)
		assert.True(t, d.ShippingCost.Equal(cost))
	})
}

func TestDistribution_Complete(t *testing.T) {
	d := createTestDistribution(t)

	require.NoError(t, d.Complete())
	assert.Equal(t, StateComplete, d.State)

	err := d.Complete()
	require.Error(t, err)
	assert.Equal(t, shared.CodeInvalidState, shared.ErrorCode(err))
}

func TestDistribution_CopyFromRequest(t *testing.T) {
	clk := clock.NewFixed(time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC))
	orgID := uuid.New()

	req, err := NewRequest(orgID, uuid.New())
	require.NoError(t, err)
	req.Comments = "Please deliver to the side entrance"

	itemA := uuid.New()
	itemB := uuid.New()
	_, err = req.AddItemRequest(itemA, 25, "")
	require.NoError(t, err)
	_, err = req.AddItemRequest(itemB, 10, "Pack")
	require.NoError(t, err)

	d := createTestDistribution(t)
	d.CopyFromRequest(req, clk)

	require.Len(t, d.Lines, 2)
	assert.Equal(t, itemA, d.Lines[0].ItemID)
	assert.Equal(t, 25, d.Lines[0].Quantity)
	assert.Equal(t, itemB, d.Lines[1].ItemID)
	assert.Equal(t, "Pack", d.Lines[1].UnitName)
	// Copies belong to the distribution, not the request
	assert.Equal(t, d.ID, d.Lines[0].ItemizableID)
	assert.NotEqual(t, req.ItemRequests[0].ID, d.Lines[0].ID)

	assert.Equal(t, orgID, d.OrganizationID)
	assert.Equal(t, req.PartnerID, d.PartnerID)
	assert.Equal(t, req.Comments, d.Comment)
	assert.Equal(t, clk.Instant.AddDate(0, 0, 1), d.IssuedAt)
	require.NotNil(t, d.SourceRequestID)
	assert.Equal(t, req.ID, *d.SourceRequestID)
	assert.Empty(t, d.AgencyRep)
}

func TestDistribution_CopyFromRequest_AgencyRep(t *testing.T) {
	clk := clock.NewFixed(time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC))

	req, err := NewRequest(uuid.New(), uuid.New())
	require.NoError(t, err)
	req.PartnerUser = testPartnerUser(t, "Gooise Meren", "gooise@example.com")

	d := createTestDistribution(t)
	d.CopyFromRequest(req, clk)

	assert.Equal(t, "Gooise Meren <gooise@example.com>", d.AgencyRep)
}

func TestDistribution_CombineDuplicates(t *testing.T) {
	d := createTestDistribution(t)
	itemID := uuid.New()

	_, err := d.AddLine(itemID, 5, "")
	require.NoError(t, err)
	_, err = d.AddLine(itemID, 10, "")
	require.NoError(t, err)

	d.CombineDuplicates()
	require.Len(t, d.Lines, 1)
	assert.Equal(t, 15, d.Lines[0].Quantity)

	// Running it again changes nothing
	d.CombineDuplicates()
	require.Len(t, d.Lines, 1)
	assert.Equal(t, 15, d.Lines[0].Quantity)
}

func TestDistribution_Future(t *testing.T) {
	clk := clock.NewFixed(time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC))

	d := createTestDistribution(t)
	d.IssuedAt = clk.Instant.Add(time.Hour)
	assert.True(t, d.Future(clk))

	d.IssuedAt = clk.Instant
	assert.False(t, d.Future(clk))

	d.IssuedAt = clk.Instant.Add(-time.Hour)
	assert.False(t, d.Future(clk))
}

func TestDistribution_DistributedAt(t *testing.T) {
	d := createTestDistribution(t)

	t.Run("date only at midnight", func(t *testing.T) {
		d.IssuedAt = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, "March 1 2024", d.DistributedAt())
	})

	t.Run("appends time of day otherwise", func(t *testing.T) {
		d.IssuedAt = time.Date(2024, time.March, 1, 14, 30, 0, 0, time.UTC)
		assert.Equal(t, "March 1 2024 2:30pm", d.DistributedAt())
	})

	t.Run("falls back to created at", func(t *testing.T) {
		d.IssuedAt = time.Time{}
		d.CreatedAt = time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, "March 2 2024", d.DistributedAt())
	})
}

func TestDistribution_CSVExportAttributes(t *testing.T) {
	d := createTestDistribution(t)
	d.DeliveryMethod = DeliveryShipped
	d.IssuedAt = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	d.AgencyRep = "Jane Doe <jane@example.com>"
	_, err := d.AddLine(uuid.New(), 40, "")
	require.NoError(t, err)
	_, err = d.AddLine(uuid.New(), 2, "")
	require.NoError(t, err)

	row := d.CSVExportAttributes("Northside Pantry", "Main Warehouse")
	assert.Equal(t, []string{
		"Northside Pantry",
		"2024-03-01",
		"Main Warehouse",
		"42",
		"",
		"shipped",
		"scheduled",
		"Jane Doe <jane@example.com>",
	}, row)
}

func TestWeekWindow(t *testing.T) {
	t.Run("midweek", func(t *testing.T) {
		// Tuesday 2024-06-18
		now := time.Date(2024, time.June, 18, 15, 45, 0, 0, time.UTC)
		w := WeekWindow(now)
		assert.Equal(t, time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, time.Date(2024, time.June, 23, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC), w.End)
	})

	t.Run("sunday still belongs to the week that started the previous monday", func(t *testing.T) {
		// Sunday 2024-06-23
		now := time.Date(2024, time.June, 23, 10, 0, 0, 0, time.UTC)
		w := WeekWindow(now)
		assert.Equal(t, time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC), w.Start)
		assert.True(t, w.Contains(now))
	})

	t.Run("monday starts a fresh week", func(t *testing.T) {
		now := time.Date(2024, time.June, 24, 0, 0, 0, 0, time.UTC)
		w := WeekWindow(now)
		assert.Equal(t, time.Date(2024, time.June, 24, 0, 0, 0, 0, time.UTC), w.Start)
		assert.False(t, w.Contains(now.Add(-time.Nanosecond)))
	})
}

func TestQuery_InLast12Months(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	q := Query{}.InLast12Months(now)
	require.NotNil(t, q.Range)

	boundary := now.AddDate(0, -12, 0)
	assert.False(t, q.Range.Contains(boundary), "the instant exactly a year ago is excluded")
	assert.True(t, q.Range.Contains(boundary.Add(time.Nanosecond)))
	assert.True(t, q.Range.Contains(now))
	assert.False(t, q.Range.Contains(now.Add(time.Nanosecond)))
}

func TestQuery_Builders(t *testing.T) {
	now := time.Date(2024, time.June, 18, 0, 0, 0, 0, time.UTC)
	itemID := uuid.New()

	q := Query{}.ThisWeek(now).ByItem(itemID).ByState(StateScheduled).WithDiapers()

	assert.True(t, q.OrderByIssuedAtAsc)
	require.NotNil(t, q.ItemID)
	assert.Equal(t, itemID, *q.ItemID)
	require.NotNil(t, q.State)
	assert.NotEmpty(t, q.ReportingCategories)
}
