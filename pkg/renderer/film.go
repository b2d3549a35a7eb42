package renderer

import (
	"image"

	"github.com/mrjoshuak/go-openexr/exr"

	"github.com/df07/go-light-transport/pkg/core"
)

// Film holds per-pixel sample statistics for an image. Row 0 is the top of the image.
type Film struct {
	Width, Height int
	pixels        []PixelStats
}

// NewFilm creates an empty film
func NewFilm(width, height int) *Film {
	return &Film{
		Width:  width,
		Height: height,
		pixels: make([]PixelStats, width*height),
	}
}

// Pixel returns the statistics of pixel (x, y)
func (f *Film) Pixel(x, y int) *PixelStats {
	return &f.pixels[y*f.Width+x]
}

// Color returns the linear radiance estimate of pixel (x, y)
func (f *Film) Color(x, y int) core.Vec3 {
	return f.Pixel(x, y).GetColor()
}

// Stats summarizes sample counts over the whole film
func (f *Film) Stats() RenderStats {
	stats := RenderStats{TotalPixels: len(f.pixels)}
	if len(f.pixels) == 0 {
		return stats
	}

	stats.MinSamples = f.pixels[0].SampleCount
	for i := range f.pixels {
		ps := &f.pixels[i]
		stats.TotalSamples += ps.SampleCount
		stats.DroppedSamples += ps.Dropped
		stats.MinSamples = min(stats.MinSamples, ps.SampleCount)
		stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, ps.SampleCount)
	}
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	return stats
}

// AverageLuminance returns the mean linear luminance over all pixels
func (f *Film) AverageLuminance() float64 {
	if len(f.pixels) == 0 {
		return 0
	}
	total := 0.0
	for i := range f.pixels {
		total += f.pixels[i].GetColor().Luminance()
	}
	return total / float64(len(f.pixels))
}

// RGBA returns a gamma-corrected 8-bit image for display
func (f *Film) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, vec3ToColor(f.Color(x, y)))
		}
	}
	return img
}

// EXR returns the linear high dynamic range image
func (f *Film) EXR() *exr.RGBAImage {
	img := exr.NewRGBAImage(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.Color(x, y)
			img.SetRGBA(x, y, float32(c.X), float32(c.Y), float32(c.Z), 1)
		}
	}
	return img
}
