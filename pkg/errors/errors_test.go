package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndWrap(t *testing.T) {
	base := New(ErrorTypeConnection, "refused")
	assert.Equal(t, "connection: refused", base.Error())
	assert.True(t, IsType(base, ErrorTypeConnection))
	assert.NotEmpty(t, base.Stack)

	wrapped := Wrap(base, ErrorTypeHealth, "check failed")
	assert.True(t, IsType(wrapped, ErrorTypeHealth))
	assert.True(t, stderrors.Is(wrapped, base))

	assert.Nil(t, Wrap(nil, ErrorTypeInternal, "nothing"))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrorTypeConfig, "bad value").WithDetail("field", "max_retries")
	assert.Equal(t, "max_retries", err.Details["field"])
}

func TestOpenError(t *testing.T) {
	cause := stderrors.New("dial tcp: refused")
	err := NewOpenError(2, cause)

	assert.Contains(t, err.Error(), "attempt 2")
	assert.True(t, stderrors.Is(err, cause))
}

func TestAggregateOpenError(t *testing.T) {
	first := stderrors.New("first")
	attempts := []error{
		NewOpenError(0, first),
		NewOpenError(1, stderrors.New("second")),
		NewOpenError(2, stderrors.New("third")),
	}
	agg := NewAggregateOpenError(attempts)

	assert.Contains(t, agg.Error(), "all 3 open attempts failed")
	assert.Len(t, agg.Unwrap(), 3)
	assert.True(t, stderrors.Is(agg, first), "aggregate exposes attempt causes")
	assert.True(t, IsAggregateOpen(agg))
	assert.False(t, IsAggregateOpen(first))

	var unwrapped *AggregateOpenError
	require.True(t, stderrors.As(agg, &unwrapped))
}

func TestCloseError(t *testing.T) {
	cause := stderrors.New("already closed")
	err := NewCloseError(cause)

	assert.Contains(t, err.Error(), "close failed")
	assert.True(t, stderrors.Is(err, cause))
}
