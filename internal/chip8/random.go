package chip8

import (
	"math/rand"
	"time"
)

// RandomSource provides the random bytes for the RND instruction.
type RandomSource interface {
	Byte() uint8
}

// Random is a seedable RandomSource. Two instances created with the same
// seed return the same sequence of bytes.
type Random struct {
	rnd *rand.Rand
}

// NewRandom returns a random source initialised with the given seed.
func NewRandom(seed int64) *Random {
	return &Random{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

// Byte returns the next random byte.
func (r *Random) Byte() uint8 {
	return uint8(r.rnd.Intn(256))
}

func timeSeed() int64 {
	return time.Now().UnixNano()
}
