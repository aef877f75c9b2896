package analysis

import (
	"math"
	"testing"

	"github.com/lmarzola/odelab/internal/ode"
)

// sineTrajectory samples sin(2*pi*f*t) on n grid points spaced dt apart.
func sineTrajectory(f, dt float64, n int) *ode.Trajectory {
	tr := &ode.Trajectory{Dim: 1, Times: make([]float64, n), States: make([]float64, n)}
	for i := 0; i < n; i++ {
		t := float64(i) * dt
		tr.Times[i] = t
		tr.States[i] = math.Sin(2 * math.Pi * f * t)
	}
	return tr
}

func TestPowerSpectrumRecoversSineFrequency(t *testing.T) {
	// 256 samples at dt=0.0625 give a resolution of 1/16 cycles per
	// unit, so f=0.5 lands exactly on bin 8.
	tr := sineTrajectory(0.5, 0.0625, 256)

	sp, err := PowerSpectrum(tr, 0)
	if err != nil {
		t.Fatalf("PowerSpectrum: %v", err)
	}
	if len(sp.Power) != 128 {
		t.Fatalf("got %d bins, want 128", len(sp.Power))
	}

	freq, power := sp.Dominant()
	if math.Abs(freq-0.5) > 1e-12 {
		t.Errorf("dominant frequency %g, want 0.5", freq)
	}
	if power <= 0 {
		t.Errorf("dominant power %g, want > 0", power)
	}
}

func TestPowerSpectrumPadsToPowerOfTwo(t *testing.T) {
	tr := sineTrajectory(0.5, 0.0625, 200)
	sp, err := PowerSpectrum(tr, 0)
	if err != nil {
		t.Fatalf("PowerSpectrum: %v", err)
	}
	if len(sp.Power) != 128 {
		t.Errorf("got %d bins, want 128 after padding to 256", len(sp.Power))
	}
}

func TestPowerSpectrumRejectsBadInput(t *testing.T) {
	tr := sineTrajectory(0.5, 0.1, 64)
	if _, err := PowerSpectrum(tr, 1); err == nil {
		t.Error("index out of range accepted")
	}
	if _, err := PowerSpectrum(tr, -1); err == nil {
		t.Error("negative index accepted")
	}
	short := &ode.Trajectory{Dim: 1, Times: []float64{0}, States: []float64{1}}
	if _, err := PowerSpectrum(short, 0); err == nil {
		t.Error("single sample accepted")
	}
}

func TestDominantIgnoresDC(t *testing.T) {
	// Constant offset plus a weak oscillation: DC carries far more
	// power but must not win.
	tr := sineTrajectory(0.5, 0.0625, 256)
	for i := range tr.States {
		tr.States[i] = 10 + 0.1*tr.States[i]
	}
	sp, err := PowerSpectrum(tr, 0)
	if err != nil {
		t.Fatalf("PowerSpectrum: %v", err)
	}
	freq, _ := sp.Dominant()
	if math.Abs(freq-0.5) > 1e-12 {
		t.Errorf("dominant frequency %g, want 0.5", freq)
	}
}
