package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of samples taken
	AverageSamples float64       // Average samples per pixel
	MaxSamples     int           // Maximum samples allowed per pixel
	MinSamples     int           // Minimum samples taken per pixel
	MaxSamplesUsed int           // Maximum samples actually used by any pixel
	Elapsed        time.Duration // Wall time of the render
}

// newRenderStats starts tracking for a region of pixelCount pixels
func newRenderStats(pixelCount, maxSamples int) RenderStats {
	return RenderStats{
		TotalPixels: pixelCount,
		MaxSamples:  maxSamples,
		MinSamples:  maxSamples, // Start with max, will be reduced
	}
}

// addPixel records the sample count of one pixel
func (s *RenderStats) addPixel(samplesUsed int) {
	s.TotalSamples += samplesUsed
	s.MinSamples = min(s.MinSamples, samplesUsed)
	s.MaxSamplesUsed = max(s.MaxSamplesUsed, samplesUsed)
}

// merge folds the statistics of another region into s
func (s *RenderStats) merge(other RenderStats) {
	s.TotalSamples += other.TotalSamples
	s.MinSamples = min(s.MinSamples, other.MinSamples)
	s.MaxSamplesUsed = max(s.MaxSamplesUsed, other.MaxSamplesUsed)
}

// finalize calculates derived statistics after all pixels are rendered
func (s *RenderStats) finalize() {
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	}
}
