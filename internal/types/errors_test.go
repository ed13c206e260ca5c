package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolkitError_Error(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := NewError(AUDIT_QUERY_FAILED, "query failed")
		assert.Equal(t, "[AUDIT_QUERY_FAILED] query failed", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := WrapError(AUDIT_STORE_FAILED, "cannot reach database", cause)
		assert.Equal(t, "[AUDIT_STORE_FAILED] cannot reach database: connection refused", err.Error())
	})
}

func TestToolkitError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := WrapError(AUDIT_STORE_FAILED, "insert failed", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestToolkitError_Is(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewError(CONFIG_KEY_MISSING, "neo4j_uri is required"))

	assert.ErrorIs(t, err, NewError(CONFIG_KEY_MISSING, "different message"))
	assert.NotErrorIs(t, err, NewError(CONFIG_LOAD_FAILED, "other code"))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewRetryableError(VECTOR_STORE_UNAVAILABLE, "timeout")))
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w",
		WrapRetryableError(EMBEDDING_FAILED, "rate limited", errors.New("429")))))
	assert.False(t, IsRetryable(NewError(AUDIT_QUERY_FAILED, "syntax error")))
	assert.False(t, IsRetryable(errors.New("plain error")))
}
