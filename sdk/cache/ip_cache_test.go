package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckFirstRunUpdates(t *testing.T) {
	c := &IPCache{}
	assert.True(t, c.Check("1.2.3.4"))
}

func TestCheckUnchangedAddressSkips(t *testing.T) {
	c := &IPCache{}
	assert.True(t, c.Check("1.2.3.4"))
	for i := 0; i < defaultRecheckTimes; i++ {
		assert.False(t, c.Check("1.2.3.4"), "run %d should skip", i+2)
	}
	// Recheck budget exhausted, the update is forced through.
	assert.True(t, c.Check("1.2.3.4"))
}

func TestCheckChangedAddressUpdates(t *testing.T) {
	c := &IPCache{}
	assert.True(t, c.Check("1.2.3.4"))
	assert.True(t, c.Check("5.6.7.8"))
}

func TestCheckEmptyAddress(t *testing.T) {
	c := &IPCache{}
	assert.True(t, c.Check(""))
}

func TestReset(t *testing.T) {
	c := &IPCache{}
	assert.True(t, c.Check("1.2.3.4"))
	assert.False(t, c.Check("1.2.3.4"))
	c.Reset()
	assert.True(t, c.Check("1.2.3.4"))
}

func TestRecheckTimesEnvOverride(t *testing.T) {
	t.Setenv(RecheckTimesENV, "2")
	c := &IPCache{}
	assert.True(t, c.Check("1.2.3.4"))
	assert.False(t, c.Check("1.2.3.4"))
	assert.False(t, c.Check("1.2.3.4"))
	assert.True(t, c.Check("1.2.3.4"))
}
