package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestIsRetryableConflict(t *testing.T) {
	t.Parallel() // Enable parallel execution
	assert.True(t, IsRetryableConflict(pgError(pgSerializationFailure)))
	assert.True(t, IsRetryableConflict(pgError(pgDeadlockDetected)))
	assert.True(t, IsRetryableConflict(
		fmt.Errorf("failed to commit: %w", pgError(pgDeadlockDetected))),
		"wrapped conflicts must still be recognized")

	assert.False(t, IsRetryableConflict(pgError(pgUniqueViolationCode)))
	assert.False(t, IsRetryableConflict(errors.New("connection refused")))
	assert.False(t, IsRetryableConflict(nil))
}

func TestConstraintViolationChecks(t *testing.T) {
	t.Parallel() // Enable parallel execution
	assert.True(t, isUniqueViolation(pgError(pgUniqueViolationCode)))
	assert.False(t, isUniqueViolation(pgError(pgForeignKeyViolationCode)))

	assert.True(t, isForeignKeyViolation(pgError(pgForeignKeyViolationCode)))
	assert.False(t, isForeignKeyViolation(errors.New("boom")))
}
