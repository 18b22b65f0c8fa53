package lottery

import "time"

// SeedSource derives the winner seed from the block timestamp.
//
// The default source uses the timestamp seconds, which whoever produces the
// block can choose. Keep that in mind before putting real value in the pool.
type SeedSource interface {
	Seed(now time.Time) int64
}

// TimestampSeed seeds the draw with the seconds since epoch of the block
type TimestampSeed struct{}

// Seed returns now as seconds since epoch
func (TimestampSeed) Seed(now time.Time) int64 {
	return now.Unix()
}

// FixedSeed always returns the same seed
type FixedSeed int64

// Seed returns the fixed value
func (f FixedSeed) Seed(time.Time) int64 {
	return int64(f)
}

// winnerIndex returns seed mod maxTickets as a non-negative ticket number
func winnerIndex(seed int64, maxTickets uint64) (uint64, error) {
	if maxTickets == 0 {
		return 0, ErrDivisionByZero
	}

	if seed >= 0 {
		return uint64(seed) % maxTickets, nil
	}

	// Euclidean remainder of a negative seed
	abs := uint64(-(seed + 1)) + 1
	r := abs % maxTickets
	if r == 0 {
		return 0, nil
	}

	return maxTickets - r, nil
}
