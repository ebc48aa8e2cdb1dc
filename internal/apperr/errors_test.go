package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacityExceededIsValidation(t *testing.T) {
	err := CapacityExceeded("rent_amount", "rent",
		decimal.NewFromInt(2200), decimal.NewFromInt(2000), decimal.NewFromInt(300))
	wrapped := fmt.Errorf("add occupant: %w", err)

	assert.True(t, IsCapacity(wrapped))
	assert.True(t, IsValidation(wrapped))
	assert.Equal(t, "capacity", Kind(wrapped))

	var v *ValidationError
	require.True(t, errors.As(wrapped, &v))
	assert.Equal(t, "rent_amount", v.Field)

	var c *CapacityExceededError
	require.True(t, errors.As(wrapped, &c))
	assert.True(t, c.Exceeds().Equal(decimal.NewFromInt(100)), "exceeds = %s", c.Exceeds())
	assert.Contains(t, c.Error(), "exceed limit 2200 by 100")
}

func TestKind(t *testing.T) {
	assert.Equal(t, "none", Kind(nil))
	assert.Equal(t, "validation", Kind(Invalid("name", "required")))
	assert.Equal(t, "not_found", Kind(NotFound("bill", "b1")))
	assert.Equal(t, "conflict", Kind(Conflict("already %s", "approved")))
	assert.Equal(t, "internal", Kind(errors.New("boom")))
	assert.False(t, IsCapacity(Invalid("name", "required")))
}
