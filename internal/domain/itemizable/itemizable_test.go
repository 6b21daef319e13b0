package itemizable

import (
	"testing"

	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeItemizable is a minimal HasLineItems implementation for tests
type fakeItemizable struct {
	id        uuid.UUID
	lines     Lines
	direction Direction
}

func newFakeItemizable(direction Direction) *fakeItemizable {
	return &fakeItemizable{id: uuid.New(), direction: direction}
}

func (f *fakeItemizable) GetID() uuid.UUID              { return f.id }
func (f *fakeItemizable) ItemizableType() string        { return "Fake" }
func (f *fakeItemizable) LineItems() Lines              { return f.lines }
func (f *fakeItemizable) SetLineItems(lines Lines)      { f.lines = lines }
func (f *fakeItemizable) InventoryDirection() Direction { return f.direction }

func TestNewLineItem(t *testing.T) {
	parent := uuid.New()

	t.Run("creates valid line", func(t *testing.T) {
		line, err := NewLineItem(parent, "Distribution", uuid.New(), 5, "")
		require.NoError(t, err)
		assert.Equal(t, 5, line.Quantity)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewLineItem(parent, "Distribution", uuid.New(), 0, "")
		require.Error(t, err)
		assert.Equal(t, shared.CodeInvalidQuantity, shared.ErrorCode(err))
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := NewLineItem(parent, "Distribution", uuid.New(), -3, "")
		require.Error(t, err)
		assert.Equal(t, shared.CodeInvalidQuantity, shared.ErrorCode(err))
	})

	t.Run("rejects nil item", func(t *testing.T) {
		_, err := NewLineItem(parent, "Distribution", uuid.Nil, 5, "")
		assert.Error(t, err)
	})
}

func TestLines_Total(t *testing.T) {
	f := newFakeItemizable(DirectionOut)
	_, err := AddLine(f, uuid.New(), 5, "")
	require.NoError(t, err)
	_, err = AddLine(f, uuid.New(), 10, "")
	require.NoError(t, err)

	assert.Equal(t, 15, Total(f))

	// Total reflects uncommitted in-memory edits
	lines := f.LineItems()
	lines[0].Quantity = 7
	f.SetLineItems(lines)
	assert.Equal(t, 17, Total(f))
}

func TestLines_Validate(t *testing.T) {
	f := newFakeItemizable(DirectionOut)
	_, err := AddLine(f, uuid.New(), 5, "")
	require.NoError(t, err)
	require.NoError(t, f.LineItems().Validate())

	// An invalid child surfaces through the aggregate error
	lines := append(f.LineItems(), LineItem{ID: uuid.New(), ItemID: uuid.New(), Quantity: 0})
	err = lines.Validate()
	require.Error(t, err)
	assert.Equal(t, shared.CodeValidationAggregate, shared.ErrorCode(err))
}

func TestCombineDuplicates(t *testing.T) {
	t.Run("condenses lines sharing an item id", func(t *testing.T) {
		f := newFakeItemizable(DirectionOut)
		itemID := uuid.New()
		_, err := AddLine(f, itemID, 5, "")
		require.NoError(t, err)
		_, err = AddLine(f, itemID, 10, "")
		require.NoError(t, err)

		CombineDuplicates(f)

		require.Len(t, f.LineItems(), 1)
		assert.Equal(t, 15, f.LineItems()[0].Quantity)
	})

	t.Run("is idempotent and preserves totals", func(t *testing.T) {
		f := newFakeItemizable(DirectionOut)
		itemA := uuid.New()
		itemB := uuid.New()
		for _, q := range []int{5, 10, 3} {
			_, err := AddLine(f, itemA, q, "")
			require.NoError(t, err)
		}
		_, err := AddLine(f, itemB, 2, "")
		require.NoError(t, err)
		totalBefore := Total(f)

		CombineDuplicates(f)
		once := append(Lines(nil), f.LineItems()...)
		CombineDuplicates(f)

		assert.Equal(t, once, f.LineItems())
		assert.Equal(t, totalBefore, Total(f))
		require.Len(t, f.LineItems(), 2)
		// First occurrence survives
		assert.Equal(t, itemA, f.LineItems()[0].ItemID)
		assert.Equal(t, 18, f.LineItems()[0].Quantity)
	})

	t.Run("no-op on distinct items", func(t *testing.T) {
		f := newFakeItemizable(DirectionIn)
		_, err := AddLine(f, uuid.New(), 1, "")
		require.NoError(t, err)
		_, err = AddLine(f, uuid.New(), 2, "")
		require.NoError(t, err)

		CombineDuplicates(f)
		assert.Len(t, f.LineItems(), 2)
	})
}

func TestCopyLineItems(t *testing.T) {
	src := newFakeItemizable(DirectionIn)
	itemID := uuid.New()
	_, err := AddLine(src, itemID, 5, "Pack")
	require.NoError(t, err)
	_, err = AddLine(src, itemID, 10, "")
	require.NoError(t, err)

	dst := newFakeItemizable(DirectionOut)
	count := CopyLineItems(src.LineItems(), dst)

	assert.Equal(t, 2, count)
	require.Len(t, dst.LineItems(), 2)

	// Copies are independent: fresh identity, same item and quantity
	for i, copied := range dst.LineItems() {
		original := src.LineItems()[i]
		assert.NotEqual(t, original.ID, copied.ID)
		assert.Equal(t, original.ItemID, copied.ItemID)
		assert.Equal(t, original.Quantity, copied.Quantity)
		assert.Equal(t, original.UnitName, copied.UnitName)
		assert.Equal(t, dst.GetID(), copied.ItemizableID)
	}

	// Source untouched
	assert.Len(t, src.LineItems(), 2)
	assert.Equal(t, src.GetID(), src.LineItems()[0].ItemizableID)
}
