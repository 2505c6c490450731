// Package analysis measures rendered audio: windowed magnitude
// spectra, log-spectral distance between two renders and fundamental
// estimation.
package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/cwbudde/algo-fft"
)

// Spectrum computes the Hann-windowed magnitude spectrum of the first
// power-of-two slice of x. The result has n/2+1 bins, bin k covering
// k·Fs/n Hz.
func Spectrum(x []float64) ([]float64, error) {
	n := prevPow2(len(x))
	if n < 16 {
		return nil, fmt.Errorf("analysis: %d samples is too short for a spectrum", len(x))
	}
	plan, err := algofft.NewPlanReal64(n)
	if err != nil {
		return nil, fmt.Errorf("analysis: fft plan: %w", err)
	}

	buf := make([]float64, n)
	for i := 0; i < n; i++ {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		buf[i] = x[i] * w
	}
	spec := make([]complex128, n/2+1)
	plan.Forward(spec, buf)

	mag := make([]float64, len(spec))
	for k, c := range spec {
		mag[k] = cmplx.Abs(c)
	}
	return mag, nil
}

// LogSpectralDistance returns the RMS difference in dB between the
// spectra of a and b, excluding the DC bin. Both signals are cut to
// the shorter length so the spectra share a bin grid.
func LogSpectralDistance(a, b []float64) (float64, error) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	specA, err := Spectrum(a[:n])
	if err != nil {
		return 0, err
	}
	specB, err := Spectrum(b[:n])
	if err != nil {
		return 0, err
	}

	var sum float64
	for k := 1; k < len(specA); k++ {
		d := linToDB(specA[k]) - linToDB(specB[k])
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(specA)-1)), nil
}

// Fundamental estimates the frequency of the strongest spectral peak
// of x in Hz.
func Fundamental(x []float64, sampleRate int) (float64, error) {
	mag, err := Spectrum(x)
	if err != nil {
		return 0, err
	}
	n := 2 * (len(mag) - 1)
	peak := 1
	for k := 2; k < len(mag)-1; k++ {
		if mag[k] > mag[peak] {
			peak = k
		}
	}
	return float64(peak) * float64(sampleRate) / float64(n), nil
}

// PeakNear returns the frequency of the strongest bin within spanHz
// of centerHz.
func PeakNear(x []float64, sampleRate int, centerHz, spanHz float64) (float64, error) {
	mag, err := Spectrum(x)
	if err != nil {
		return 0, err
	}
	n := 2 * (len(mag) - 1)
	binHz := float64(sampleRate) / float64(n)
	lo := int((centerHz - spanHz) / binHz)
	hi := int((centerHz + spanHz) / binHz)
	if lo < 1 {
		lo = 1
	}
	if hi > len(mag)-1 {
		hi = len(mag) - 1
	}
	if lo >= hi {
		return 0, fmt.Errorf("analysis: band %g±%g Hz is empty at %d bins", centerHz, spanHz, len(mag))
	}
	peak := lo
	for k := lo + 1; k <= hi; k++ {
		if mag[k] > mag[peak] {
			peak = k
		}
	}
	return float64(peak) * binHz, nil
}

// RMS returns the root mean square level of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

func linToDB(x float64) float64 {
	if x < 1e-12 {
		x = 1e-12
	}
	return 20 * math.Log10(x)
}

func prevPow2(n int) int {
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}
