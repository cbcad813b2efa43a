package imageio

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// spectrumToColor converts radiance to RGBA with gamma 2 correction and clamping
func spectrumToColor(s core.Spectrum) color.RGBA {
	return color.RGBA{
		R: toByte(s.R),
		G: toByte(s.G),
		B: toByte(s.B),
		A: 255,
	}
}

func toByte(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	return uint8(255 * math.Min(math.Sqrt(v), 1))
}

// ToImage converts a sample buffer to an 8-bit image.
// Film row 0 is the bottom of the picture, so rows are flipped.
func ToImage(buffer *renderer.SampleBuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, buffer.Width, buffer.Height))
	for y := 0; y < buffer.Height; y++ {
		row := buffer.Height - 1 - y
		for x := 0; x < buffer.Width; x++ {
			img.SetRGBA(x, row, spectrumToColor(buffer.At(x, y)))
		}
	}
	return img
}

// SampleRateImage visualizes how many samples every pixel took.
// Pixels that hit the sample cap are red, pixels that stopped early shade toward blue.
func SampleRateImage(buffer *renderer.SampleBuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, buffer.Width, buffer.Height))
	maxCount := buffer.MaxSampleCount()
	for y := 0; y < buffer.Height; y++ {
		row := buffer.Height - 1 - y
		for x := 0; x < buffer.Width; x++ {
			rate := 0.0
			if maxCount > 0 {
				rate = float64(buffer.SampleCount(x, y)) / float64(maxCount)
			}
			img.SetRGBA(x, row, color.RGBA{
				R: uint8(math.Round(255 * rate)),
				G: 0,
				B: uint8(math.Round(255 * (1 - rate))),
				A: 255,
			})
		}
	}
	return img
}

// Scale resamples img by an integer factor. A factor of 1 or less returns img unchanged.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
