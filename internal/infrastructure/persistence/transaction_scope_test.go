package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"

	appinv "github.com/essentials/backend/internal/application/inventory"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeSQLStateError mimics the postgres driver errors, which carry their
// SQLSTATE code behind a SQLState method.
type fakeSQLStateError struct {
	code string
}

func (e *fakeSQLStateError) Error() string    { return "sqlstate " + e.code }
func (e *fakeSQLStateError) SQLState() string { return e.code }

func setupScopeTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestGormTransactionScope_Execute_TranslatesWriteConflicts(t *testing.T) {
	scope := NewGormTransactionScope(setupScopeTestDB(t))

	tests := []struct {
		name  string
		state string
	}{
		{"serialization failure", "40001"},
		{"deadlock detected", "40P01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := scope.Execute(context.Background(), func(appinv.TransactionalRepositories) error {
				return fmt.Errorf("save level: %w", &fakeSQLStateError{code: tt.state})
			})

			require.Error(t, err)
			assert.ErrorIs(t, err, shared.ErrConcurrentModification)
			assert.Equal(t, shared.CodeConcurrentModification, shared.ErrorCode(err))
		})
	}
}

func TestGormTransactionScope_Execute_PassesOtherErrorsThrough(t *testing.T) {
	scope := NewGormTransactionScope(setupScopeTestDB(t))

	t.Run("other sqlstate codes", func(t *testing.T) {
		cause := &fakeSQLStateError{code: "23505"}
		err := scope.Execute(context.Background(), func(appinv.TransactionalRepositories) error {
			return cause
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, shared.ErrConcurrentModification)
	})

	t.Run("domain errors", func(t *testing.T) {
		err := scope.Execute(context.Background(), func(appinv.TransactionalRepositories) error {
			return shared.ErrNotFound
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("plain errors", func(t *testing.T) {
		cause := errors.New("boom")
		err := scope.Execute(context.Background(), func(appinv.TransactionalRepositories) error {
			return cause
		})

		assert.ErrorIs(t, err, cause)
	})
}

func TestTranslateWriteConflict_Nil(t *testing.T) {
	assert.NoError(t, translateWriteConflict(nil))
}
