package shared

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorUnwrapsToSentinel(t *testing.T) {
	verr := NewValidationError()
	require.Nil(t, verr.Err())

	verr.Add("quantity", "The quantity field must be at least 1.")
	verr.Add("price", "The price field is required.")

	err := verr.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.True(t, verr.Has("price"))
	assert.False(t, verr.Has("product_id"))
	assert.Equal(t, "validation failed: price: The price field is required., quantity: The quantity field must be at least 1.", err.Error())

	var target *ValidationError
	require.True(t, errors.As(err, &target))
	assert.Len(t, target.Fields, 2)
}

func TestDependencyAndNotificationWrapping(t *testing.T) {
	cause := errors.New("connection refused")

	dep := Dependency("list orders", cause)
	assert.True(t, errors.Is(dep, ErrDependency))
	assert.True(t, errors.Is(dep, cause))
	assert.Nil(t, Dependency("noop", nil))

	note := Notification("order-created", cause)
	assert.True(t, errors.Is(note, ErrNotification))
	assert.Contains(t, note.Error(), "publish order-created")
}

func TestISOTimeUsesUTC(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	ts := time.Date(2025, 3, 1, 7, 30, 0, 123456000, loc)
	assert.Equal(t, "2025-03-01T00:30:00.123456Z", ISOTime(ts))
}
