package renderer

import (
	"math"
	"time"

	"github.com/df07/go-light-transport/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of accepted samples
	AverageSamples float64       // Average accepted samples per pixel
	MinSamples     int           // Fewest accepted samples of any pixel
	MaxSamplesUsed int           // Most accepted samples of any pixel
	DroppedSamples int           // Non-finite estimates that were discarded
	Duration       time.Duration // Wall time of the render
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Vec3 // RGB accumulator for final result
	LuminanceAccum   float64   // Luminance accumulator
	LuminanceSqAccum float64   // Luminance squared for variance
	SampleCount      int       // Number of accepted samples
	Dropped          int       // Number of discarded samples
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// LuminanceVariance returns the sample variance of the pixel luminance
func (ps *PixelStats) LuminanceVariance() float64 {
	if ps.SampleCount < 2 {
		return 0
	}
	n := float64(ps.SampleCount)
	mean := ps.LuminanceAccum / n
	return math.Max(0, (ps.LuminanceSqAccum/n-mean*mean)*n/(n-1))
}
