package data

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutezFromNat(t *testing.T) {
	m, ok := MutezFromNat(uint64(MaxMutez))
	require.True(t, ok)
	assert.Equal(t, MaxMutez, m)

	_, ok = MutezFromNat(uint64(MaxMutez) + 1)
	assert.False(t, ok)
	_, ok = MutezFromNat(math.MaxUint64)
	assert.False(t, ok)

	assert.Equal(t, Mutez(2500000), Tez(2)+Tez(1)/2)
}

func TestMutez_MulNat(t *testing.T) {
	m, ok := Tez(1).MulNat(3)
	require.True(t, ok)
	assert.Equal(t, Tez(3), m)

	m, ok = MaxMutez.MulNat(1)
	require.True(t, ok)
	assert.Equal(t, MaxMutez, m)

	m, ok = Mutez(7).MulNat(0)
	require.True(t, ok)
	assert.Equal(t, Mutez(0), m)

	// fits in 64 bits but not in the amount range
	_, ok = MaxMutez.MulNat(2)
	assert.False(t, ok)
	// overflows 64 bits
	_, ok = MaxMutez.MulNat(4)
	assert.False(t, ok)
	_, ok = Mutez(2).MulNat(math.MaxUint64)
	assert.False(t, ok)
}

func TestMutez_Add(t *testing.T) {
	m, ok := (MaxMutez - 1).Add(1)
	require.True(t, ok)
	assert.Equal(t, MaxMutez, m)

	_, ok = MaxMutez.Add(1)
	assert.False(t, ok)
	_, ok = Mutez(math.MaxUint64).Add(1)
	assert.False(t, ok)
}

func TestMutez_Sub(t *testing.T) {
	m, ok := MaxMutez.Sub(MaxMutez)
	require.True(t, ok)
	assert.Equal(t, Mutez(0), m)

	m, ok = Tez(2).Sub(Tez(1))
	require.True(t, ok)
	assert.Equal(t, Tez(1), m)

	_, ok = Mutez(0).Sub(1)
	assert.False(t, ok)
}
