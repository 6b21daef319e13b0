package transfer

import (
	"testing"

	"github.com/essentials/backend/internal/domain/itemizable"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransfer(t *testing.T) {
	t.Run("creates between two locations", func(t *testing.T) {
		tr, err := NewTransfer(uuid.New(), uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.Equal(t, itemizable.DirectionOut, tr.InventoryDirection())
	})

	t.Run("refuses a self transfer", func(t *testing.T) {
		loc := uuid.New()
		_, err := NewTransfer(uuid.New(), loc, loc)
		require.Error(t, err)
		assert.Equal(t, shared.CodeInvalidInput, shared.ErrorCode(err))
	})

	t.Run("rejects missing references", func(t *testing.T) {
		_, err := NewTransfer(uuid.Nil, uuid.New(), uuid.New())
		assert.Error(t, err)
		_, err = NewTransfer(uuid.New(), uuid.Nil, uuid.New())
		assert.Error(t, err)
		_, err = NewTransfer(uuid.New(), uuid.New(), uuid.Nil)
		assert.Error(t, err)
	})
}

func TestTransfer_Validate(t *testing.T) {
	tr, err := NewTransfer(uuid.New(), uuid.New(), uuid.New())
	require.NoError(t, err)

	_, err = tr.AddLine(uuid.New(), 4, "")
	require.NoError(t, err)
	assert.NoError(t, tr.Validate())

	tr.Lines[0].Quantity = 0
	err = tr.Validate()
	require.Error(t, err)
	assert.Equal(t, shared.CodeValidationAggregate, shared.ErrorCode(err))
}
