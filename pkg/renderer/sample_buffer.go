package renderer

import "github.com/df07/go-pathtracer/pkg/core"

// SampleBuffer holds the averaged radiance and the number of samples taken
// for every pixel. Pixel (0, 0) is the bottom-left corner of the film.
type SampleBuffer struct {
	Width, Height int
	pixels        []core.Spectrum
	counts        []int
}

// NewSampleBuffer creates a zeroed buffer
func NewSampleBuffer(width, height int) *SampleBuffer {
	return &SampleBuffer{
		Width:  width,
		Height: height,
		pixels: make([]core.Spectrum, width*height),
		counts: make([]int, width*height),
	}
}

func (b *SampleBuffer) index(x, y int) int {
	return x + y*b.Width
}

// Set stores the estimate for a pixel
func (b *SampleBuffer) Set(x, y int, radiance core.Spectrum, samples int) {
	i := b.index(x, y)
	b.pixels[i] = radiance
	b.counts[i] = samples
}

// At returns the estimate for a pixel
func (b *SampleBuffer) At(x, y int) core.Spectrum {
	return b.pixels[b.index(x, y)]
}

// SampleCount returns the number of samples a pixel took
func (b *SampleBuffer) SampleCount(x, y int) int {
	return b.counts[b.index(x, y)]
}

// MaxSampleCount returns the largest per-pixel sample count
func (b *SampleBuffer) MaxSampleCount() int {
	maxCount := 0
	for _, c := range b.counts {
		maxCount = max(maxCount, c)
	}
	return maxCount
}

// AverageLuminance returns the mean luminance over all pixels
func (b *SampleBuffer) AverageLuminance() float64 {
	if len(b.pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range b.pixels {
		total += p.Luminance()
	}
	return total / float64(len(b.pixels))
}

// Clear zeroes every pixel
func (b *SampleBuffer) Clear() {
	clear(b.pixels)
	clear(b.counts)
}
