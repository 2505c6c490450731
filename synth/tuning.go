package synth

import (
	"math/rand"

	"github.com/cwbudde/algo-approx"
)

func pow2Approx(x float32) float32 {
	const ln2 = 0.69314718055994530942
	return approx.FastExp(x * ln2)
}

// centsToRatio converts a pitch offset in cents to a frequency ratio.
func centsToRatio(cents float64) float64 {
	return float64(pow2Approx(float32(cents) / 1200))
}

// detuneRatio picks a random frequency ratio within the given spread
// in cents, 1 when the spread is 0.
func detuneRatio(cents float64) float64 {
	if cents == 0 {
		return 1
	}
	return centsToRatio(cents * (2*rand.Float64() - 1))
}
