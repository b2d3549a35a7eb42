package renderer

import (
	"errors"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrjoshuak/go-openexr/exr"

	"github.com/df07/go-light-transport/pkg/core"
)

// ErrUnsupportedFormat is returned by SaveImage for unknown file extensions
var ErrUnsupportedFormat = errors.New("renderer: unsupported image format")

// vec3ToColor converts a Vec3 color to RGBA with proper clamping and gamma correction
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Apply gamma correction (gamma = 2.0)
	colorVec = colorVec.GammaCorrect(2.0)

	// Clamp to valid color range
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

// WritePNG encodes the display image of the film as PNG
func WritePNG(w io.Writer, film *Film) error {
	return png.Encode(w, film.RGBA())
}

// SaveImage writes the film to path. ".exr" keeps linear radiance; ".png" is
// gamma corrected and clamped.
func SaveImage(path string, film *Film) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".exr":
		if err := exr.EncodeFile(path, film.EXR()); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return nil
	case ".png":
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := WritePNG(file, film); err != nil {
			file.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return file.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
