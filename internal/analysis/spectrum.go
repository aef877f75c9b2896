package analysis

import (
	"fmt"

	"github.com/mjibson/go-dsp/fft"

	"github.com/lmarzola/odelab/internal/ode"
)

// Spectrum is the one-sided power spectrum of one state column sampled
// on the fixed integration grid. Freqs are in cycles per time unit.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// PowerSpectrum transforms state column idx of a trajectory. The fixed
// grid gives a uniform sampling interval for free; samples are
// zero-padded to the next power of two.
func PowerSpectrum(tr *ode.Trajectory, idx int) (*Spectrum, error) {
	if idx < 0 || idx >= tr.Dim {
		return nil, fmt.Errorf("analysis: state index %d out of range for dimension %d", idx, tr.Dim)
	}
	if tr.Len() < 2 {
		return nil, fmt.Errorf("analysis: need at least 2 samples, got %d", tr.Len())
	}
	dt := tr.Times[1] - tr.Times[0]

	n := 1
	for n < tr.Len() {
		n <<= 1
	}
	samples := make([]float64, n)
	for i := 0; i < tr.Len(); i++ {
		samples[i] = tr.Y(i)[idx]
	}

	coeffs := fft.FFTReal(samples)
	half := n / 2
	sp := &Spectrum{Freqs: make([]float64, half), Power: make([]float64, half)}
	for k := 0; k < half; k++ {
		sp.Freqs[k] = float64(k) / (float64(n) * dt)
		re, im := real(coeffs[k]), imag(coeffs[k])
		sp.Power[k] = re*re + im*im
	}
	return sp, nil
}

// Dominant returns the strongest bin above DC. A constant signal
// reports frequency zero with zero power.
func (sp *Spectrum) Dominant() (freq, power float64) {
	for k := 1; k < len(sp.Power); k++ {
		if sp.Power[k] > power {
			freq, power = sp.Freqs[k], sp.Power[k]
		}
	}
	return freq, power
}
