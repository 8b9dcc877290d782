package census

import (
	"math/rand"
	"time"
)

const (
	// DefaultRetention keeps about 5% of the rows.
	DefaultRetention = 5
	// maxDraw is the inclusive upper bound of a draw.
	maxDraw = 100
)

// Sampler decides whether an accepted row is retained.
type Sampler interface {
	Keep() bool
}

// Draw returns a uniform integer in [0, 100].
type Draw func() int

// RandomSampler keeps a row if its draw is below the retention threshold.
type RandomSampler struct {
	draw      Draw
	retention int
}

// NewRandomSampler creates a sampler backed by math/rand.
// A zero seed draws the seed from the clock.
func NewRandomSampler(seed int64, retention int) *RandomSampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))
	return NewSampler(func() int {
		return rnd.Intn(maxDraw + 1)
	}, retention)
}

// NewSampler creates a sampler for the given draw function.
func NewSampler(draw Draw, retention int) *RandomSampler {
	return &RandomSampler{
		draw:      draw,
		retention: retention,
	}
}

// Keep draws once and retains the row if the draw is strictly below the retention.
func (s *RandomSampler) Keep() bool {
	return s.draw() < s.retention
}

// KeepAll retains every row.
type KeepAll struct{}

func (KeepAll) Keep() bool {
	return true
}
