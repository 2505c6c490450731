package synth

// DCOParams shapes the oscillator mix of a square and a trapezoidal
// triangle waveform. The same set may be shared by several voices, a
// change through the user interface affects all of them.
type DCOParams struct {
	// SquareVolume is the square waveform level in [0, 1].
	SquareVolume float64

	// SquarePWM is the duty ratio of the square waveform. 0 hands the
	// duty ratio over to the modulation wheel.
	SquarePWM float64

	// TriangleVolume is the triangle waveform level in [0, 1].
	TriangleVolume float64

	// TriangleRatio is the fraction of the period carrying the
	// triangle, the rest of the period stays at the low level.
	TriangleRatio float64

	// TriangleFallRatio is the fraction of the triangle spent falling.
	TriangleFallRatio float64

	// DetuneCents spreads each note-on by a random detune in
	// [-DetuneCents, +DetuneCents]. 0 disables the spread.
	DetuneCents float64
}

// NewDCOParams creates the parameters of a plain full-level square.
func NewDCOParams() *DCOParams {
	return &DCOParams{
		SquareVolume: 1,
		SquarePWM:    0.5,
	}
}

// EnvelopeParams shapes an ADSR envelope. Times are in seconds, the
// sustain level in [0, 1].
type EnvelopeParams struct {
	AttackTime   float64
	DecayTime    float64
	SustainLevel float64
	ReleaseTime  float64
}

// NewEnvelopeParams creates the parameters of an immediate full-level
// envelope: no attack, no decay, full sustain, no release.
func NewEnvelopeParams() *EnvelopeParams {
	return &EnvelopeParams{SustainLevel: 1}
}
