package core

// Spectrum is an RGB radiance triple
type Spectrum struct {
	R, G, B float64
}

// NewSpectrum creates a new Spectrum
func NewSpectrum(r, g, b float64) Spectrum {
	return Spectrum{R: r, G: g, B: b}
}

// Gray returns a spectrum with the same value in every channel
func Gray(v float64) Spectrum {
	return Spectrum{R: v, G: v, B: v}
}

// Add returns the channel-wise sum
func (s Spectrum) Add(other Spectrum) Spectrum {
	return Spectrum{s.R + other.R, s.G + other.G, s.B + other.B}
}

// Multiply scales every channel by a scalar
func (s Spectrum) Multiply(scalar float64) Spectrum {
	return Spectrum{s.R * scalar, s.G * scalar, s.B * scalar}
}

// MultiplySpectrum returns the channel-wise product
func (s Spectrum) MultiplySpectrum(other Spectrum) Spectrum {
	return Spectrum{s.R * other.R, s.G * other.G, s.B * other.B}
}

// IsBlack reports whether every channel is zero
func (s Spectrum) IsBlack() bool {
	return s.R == 0 && s.G == 0 && s.B == 0
}

// Luminance returns the perceptual luminance of the spectrum.
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func (s Spectrum) Luminance() float64 {
	return 0.299*s.R + 0.587*s.G + 0.114*s.B
}
