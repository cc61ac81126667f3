package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/recallapp/recall-api/internal/store"
)

func pgError(code string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, Message: "test error"}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{
			name:   "no rows maps to not found",
			err:    sql.ErrNoRows,
			target: store.ErrNotFound,
		},
		{
			name:   "wrapped no rows maps to not found",
			err:    fmt.Errorf("query failed: %w", sql.ErrNoRows),
			target: store.ErrNotFound,
		},
		{
			name:   "unique violation maps to duplicate",
			err:    pgError(uniqueViolationCode),
			target: store.ErrDuplicate,
		},
		{
			name:   "foreign key violation maps to invalid entity",
			err:    pgError(foreignKeyViolationCode),
			target: store.ErrInvalidEntity,
		},
		{
			name:   "check violation maps to invalid entity",
			err:    pgError(checkViolationCode),
			target: store.ErrInvalidEntity,
		},
		{
			name:   "not null violation maps to invalid entity",
			err:    pgError(notNullViolationCode),
			target: store.ErrInvalidEntity,
		},
		{
			name:   "serialization failure maps to conflict",
			err:    pgError(serializationFailureCode),
			target: store.ErrConflict,
		},
		{
			name:   "deadlock maps to conflict",
			err:    pgError(deadlockDetectedCode),
			target: store.ErrConflict,
		},
		{
			name:   "lock not available maps to conflict",
			err:    pgError(lockNotAvailableCode),
			target: store.ErrConflict,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			mapped := MapError(tc.err)
			assert.ErrorIs(t, mapped, tc.target)
		})
	}

	t.Run("nil error stays nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, MapError(nil))
	})

	t.Run("unknown error passes through", func(t *testing.T) {
		t.Parallel()
		err := errors.New("connection reset")
		assert.Equal(t, err, MapError(err))
	})
}

func TestViolationHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(pgError(uniqueViolationCode)))
	assert.False(t, IsUniqueViolation(pgError(foreignKeyViolationCode)))
	assert.False(t, IsUniqueViolation(errors.New("not a pg error")))

	assert.True(t, IsForeignKeyViolation(pgError(foreignKeyViolationCode)))
	assert.False(t, IsForeignKeyViolation(pgError(uniqueViolationCode)))

	assert.True(t, IsSerializationFailure(pgError(serializationFailureCode)))
	assert.True(t, IsSerializationFailure(pgError(deadlockDetectedCode)))
	assert.True(t, IsSerializationFailure(pgError(lockNotAvailableCode)))
	assert.False(t, IsSerializationFailure(pgError(uniqueViolationCode)))
	assert.False(t, IsSerializationFailure(nil))

	wrapped := fmt.Errorf("insert failed: %w", pgError(uniqueViolationCode))
	assert.True(t, IsUniqueViolation(wrapped))
}
