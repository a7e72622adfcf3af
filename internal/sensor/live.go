package sensor

import (
	"context"
	"math/rand/v2"
	"sync"
)

const (
	// liveOffset is the background level every live reading starts from.
	liveOffset = 16.0
	// liveSpread is the maximum excursion above liveOffset.
	liveSpread = 6.0
	// pcgStream is the second PCG word derived from the seed.
	pcgStream = 0x9e3779b97f4a7c15
)

// Live simulates the plant's radioactivity sensor.
// Readings fall in [16, 22), so most of them are safe and a few leave the range.
type Live struct {
	// rng is the instance-owned pseudo random source.
	rng *rand.Rand
	// mu protects rng, which is not safe for concurrent use.
	mu sync.Mutex
}

// LiveOption configures a Live sensor.
type LiveOption func(*liveOptions)

// liveOptions collects the settings applied by LiveOption.
type liveOptions struct {
	seed    uint64
	hasSeed bool
}

// WithSeed makes the live sensor reproducible.
func WithSeed(seed uint64) LiveOption {
	return func(o *liveOptions) {
		o.seed = seed
		o.hasSeed = true
	}
}

// NewLive creates a simulated sensor. Without WithSeed a random seed is picked.
func NewLive(opts ...LiveOption) *Live {
	options := new(liveOptions)
	for _, opt := range opts {
		opt(options)
	}

	if !options.hasSeed {
		options.seed = rand.Uint64() //nolint:gosec // Simulation only.
	}

	return &Live{
		rng: rand.New(rand.NewPCG(options.seed, options.seed^pcgStream)), //nolint:gosec // Simulation only.
	}
}

// NextMeasurement samples the simulated sensor.
func (l *Live) NextMeasurement(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// The product of two uniform draws skews readings towards the offset.
	sample := liveSpread * l.rng.Float64() * l.rng.Float64()

	return liveOffset + sample, nil
}
