// Package analysis provides numerical experiments on top of the engine.
//
//   - [Converge]: step-halving refinement study with observed orders
//   - [PhasePortrait]: 2D phase space projection of a trajectory
//   - [Section]: Poincaré section with linear crossing interpolation
//   - [PowerSpectrum]: FFT power spectrum of one state column
//
// # Convergence
//
// Observed orders are measured against a fourth order reference
// solution two levels finer than the finest rung:
//
//	study, err := analysis.Converge(sys, ode.RK4, 0.25, 4)
//	for _, p := range study.Points {
//	    fmt.Printf("h=%-8g err=%.3e p=%.2f\n", p.Step, p.Error, p.Observed)
//	}
package analysis
