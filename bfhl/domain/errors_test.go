package domain

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorCategories(t *testing.T) {
	wrapped := errors.Wrapf(ErrOutOfRange, "invalid value at index %d", 3)
	assert.True(t, IsBadRequest(wrapped))
	assert.False(t, IsUnavailable(wrapped))
	assert.True(t, errors.Is(wrapped, ErrOutOfRange))
	assert.False(t, errors.Is(wrapped, ErrTooLong))

	upstream := errors.Wrap(ErrUpstreamUnavailable, "dial tcp: timeout")
	assert.False(t, IsBadRequest(upstream))
	assert.False(t, IsUnavailable(upstream))

	assert.True(t, IsUnavailable(errors.WithStack(ErrNoSlot)))
	assert.True(t, IsNotFound(ErrNotFound))
	assert.False(t, IsBadRequest(nil))
}
