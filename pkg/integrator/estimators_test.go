package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
)

func TestBalanceHeuristic(t *testing.T) {
	tests := []struct {
		a, b     float64
		expected float64
	}{
		{1, 1, 0.5},
		{3, 1, 0.75},
		{0, 2, 0},
		{2, 0, 1},
		{0, 0, 0},
	}
	for _, tt := range tests {
		got := BalanceHeuristic(tt.a, tt.b)
		if math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("BalanceHeuristic(%f, %f) = %f, expected %f", tt.a, tt.b, got, tt.expected)
		}
	}

	// The two strategies' weights partition unity
	for _, pair := range [][2]float64{{0.1, 7}, {3.5, 0.2}, {1e-9, 1e9}} {
		sum := BalanceHeuristic(pair[0], pair[1]) + BalanceHeuristic(pair[1], pair[0])
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("Weights for %v sum to %f", pair, sum)
		}
	}
}

func TestAreaToSolidAngle(t *testing.T) {
	// pdf_area · d² / cosθ
	got := AreaToSolidAngle(0.25, 2, 0.5)
	if math.Abs(got-2) > 1e-12 {
		t.Errorf("AreaToSolidAngle = %f, expected 2", got)
	}
	if got := AreaToSolidAngle(1, 1, 0); got != 0 {
		t.Errorf("Grazing conversion should be 0, got %f", got)
	}
}

func TestRussianRoulette(t *testing.T) {
	opts := DefaultOptions()

	t.Run("inactive before start depth", func(t *testing.T) {
		sampler := &countingSampler{value: 0.999}
		throughput := core.Splat(0.01)
		if !russianRoulette(opts.RouletteStartDepth-1, &throughput, sampler, opts) {
			t.Error("Path killed before roulette starts")
		}
		if sampler.calls != 0 {
			t.Errorf("Roulette drew %d samples before its start depth", sampler.calls)
		}
		if throughput != core.Splat(0.01) {
			t.Errorf("Throughput changed to %v", throughput)
		}
	})

	t.Run("survivor is rescaled", func(t *testing.T) {
		sampler := &countingSampler{value: 0.1}
		throughput := core.NewVec3(0.5, 0.25, 0.1)
		if !russianRoulette(opts.RouletteStartDepth, &throughput, sampler, opts) {
			t.Fatal("Expected survival with u=0.1 < 0.5")
		}
		if math.Abs(throughput.X-1) > 1e-12 || math.Abs(throughput.Y-0.5) > 1e-12 {
			t.Errorf("Expected throughput divided by 0.5, got %v", throughput)
		}
	})

	t.Run("survival capped", func(t *testing.T) {
		sampler := &countingSampler{value: 0.995}
		throughput := core.Splat(3)
		if russianRoulette(opts.RouletteStartDepth, &throughput, sampler, opts) {
			t.Error("Survival must be capped at 0.99")
		}
	})

	t.Run("zero throughput dies", func(t *testing.T) {
		sampler := &countingSampler{value: 0}
		throughput := core.Vec3{}
		if russianRoulette(opts.RouletteStartDepth, &throughput, sampler, opts) {
			t.Error("Zero throughput must terminate")
		}
	})
}
