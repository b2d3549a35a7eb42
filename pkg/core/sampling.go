package core

import "math/rand/v2"

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a Go random generator. A RandomSampler belongs to one
// task and must not be shared between goroutines.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewStreamSampler creates a sampler drawing from the PCG stream (seed, stream)
func NewStreamSampler(seed, stream uint64) *RandomSampler {
	return &RandomSampler{random: rand.New(rand.NewPCG(seed, stream))}
}

// NewPixelSampler returns the independent stream for one (pixel, sample) pair.
// The same arguments always yield the same sequence, no matter which worker
// renders the pixel or in what order.
func NewPixelSampler(seed uint64, pixelIndex, sampleIndex int) *RandomSampler {
	return NewStreamSampler(mix64(seed^mix64(uint64(pixelIndex))), uint64(sampleIndex))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// mix64 is the splitmix64 finalizer
func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
