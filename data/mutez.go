package data

import (
	"math"
	"math/bits"
)

// MutezPerTez is the number of mutez in one tez
const MutezPerTez = 1000000

// MaxMutez is the largest representable amount
const MaxMutez = Mutez(math.MaxInt64)

// Mutez is an amount expressed in the smallest monetary unit
type Mutez uint64

// MutezFromNat - converts a natural number of mutez to an amount, failing when it
// does not fit the amount range
func MutezFromNat(n uint64) (Mutez, bool) {
	if n > uint64(MaxMutez) {
		return 0, false
	}

	return Mutez(n), true
}

// Tez - returns an amount of whole tez
func Tez(n uint64) Mutez {
	return Mutez(n * MutezPerTez)
}

// MulNat - multiplies the amount by n, reporting overflow
func (m Mutez) MulNat(n uint64) (Mutez, bool) {
	hi, lo := bits.Mul64(uint64(m), n)
	if hi != 0 || lo > uint64(MaxMutez) {
		return 0, false
	}

	return Mutez(lo), true
}

// Add - adds two amounts, reporting overflow
func (m Mutez) Add(o Mutez) (Mutez, bool) {
	sum, carry := bits.Add64(uint64(m), uint64(o), 0)
	if carry != 0 || sum > uint64(MaxMutez) {
		return 0, false
	}

	return Mutez(sum), true
}

// Sub - subtracts o from m, reporting underflow
func (m Mutez) Sub(o Mutez) (Mutez, bool) {
	if o > m {
		return 0, false
	}

	return m - o, true
}
