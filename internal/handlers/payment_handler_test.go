package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInCents(t *testing.T) {
	assert.Equal(t, int64(1999), amountInCents(19.99))
	assert.Equal(t, int64(0), amountInCents(0))
	assert.Equal(t, int64(52500), amountInCents(525.0))

	// Float arithmetic can land just under the true value; the conversion
	// must not truncate the cent away.
	assert.Equal(t, int64(18250), amountInCents(182.49999999999997))
	assert.Equal(t, int64(13000), amountInCents(129.99999999999997))
}
