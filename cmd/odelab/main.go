package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/lmarzola/odelab/internal/analysis"
	"github.com/lmarzola/odelab/internal/config"
	"github.com/lmarzola/odelab/internal/export"
	"github.com/lmarzola/odelab/internal/model"
	"github.com/lmarzola/odelab/internal/ode"
	"github.com/lmarzola/odelab/internal/store"
	"github.com/lmarzola/odelab/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	order      int
	step       float64
	tStart     float64
	tEnd       float64
	initState  []float64
	paramFlags []string
	configFile string
	preset     string
	// Phase plot axes
	xAxis int
	yAxis int
	// Convergence study depth
	levels int
	// Spectrum / plot column
	column int
	// Export options
	outPath      string
	withAnalytic bool
	withPlt      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "odelab",
		Short: "fixed-step Runge-Kutta integration lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".odelab", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "integrate a model and store the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runIntegration,
	}
	addRunFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")
	phaseCmd.Flags().StringVar(&outPath, "png", "", "also render the portrait to a PNG file")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "power spectrum of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&column, "column", 0, "state index to transform")

	convergenceCmd := &cobra.Command{
		Use:   "convergence [model]",
		Short: "step-halving refinement study",
		Args:  cobra.MaximumNArgs(1),
		RunE:  convergenceStudy,
	}
	addRunFlags(convergenceCmd)
	convergenceCmd.Flags().IntVar(&levels, "levels", 5, "number of refinement levels")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportDatCmd := &cobra.Command{
		Use:   "export-dat [run_id]",
		Short: "export a run as whitespace columns for gnuplot",
		Args:  cobra.ExactArgs(1),
		RunE:  exportDat,
	}
	exportDatCmd.Flags().StringVar(&outPath, "out", "", "output path (default <run_id>.dat)")
	exportDatCmd.Flags().BoolVar(&withAnalytic, "analytic", false, "append the closed-form solution column")
	exportDatCmd.Flags().BoolVar(&withPlt, "plt", false, "also write a gnuplot script next to the dat file")

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [run_id]",
		Short: "export a run as a PNG chart",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPNG,
	}
	exportPNGCmd.Flags().StringVar(&outPath, "out", "", "output path (default <run_id>.png)")
	exportPNGCmd.Flags().BoolVar(&withAnalytic, "analytic", false, "overlay the closed-form solution")

	exportHTMLCmd := &cobra.Command{
		Use:   "export-html [run_id]",
		Short: "export a run as an interactive HTML chart",
		Args:  cobra.ExactArgs(1),
		RunE:  exportHTML,
	}
	exportHTMLCmd.Flags().StringVar(&outPath, "out", "", "output path (default <run_id>.html)")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list available models",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range model.NewRegistry().List() {
				fmt.Println(name)
			}
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "integrate a model with a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, phaseCmd, analyzeCmd,
		convergenceCmd, exportCmd, exportDatCmd, exportPNGCmd, exportHTMLCmd,
		presetsCmd, modelsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&order, "order", config.DefaultOrder, "method order (1-4)")
	cmd.Flags().Float64Var(&step, "step", config.DefaultStep, "fixed step size h")
	cmd.Flags().Float64Var(&tStart, "t0", 0, "start time")
	cmd.Flags().Float64Var(&tEnd, "t1", config.DefaultT1, "end time")
	cmd.Flags().Float64SliceVar(&initState, "y0", nil, "initial state (comma separated)")
	cmd.Flags().StringArrayVar(&paramFlags, "param", nil, "model parameter name=value (repeatable)")
	cmd.Flags().StringVar(&configFile, "config", "", "run file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "named preset configuration")
}

// buildConfig resolves one run configuration: preset, then config file,
// then explicit flags, each layer overriding the previous.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) == 1 {
		cfg.Model = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for model %s (available: %v)",
				preset, cfg.Model, config.ListPresets(cfg.Model))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if len(args) == 1 {
			loaded.Model = args[0]
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("order") {
		cfg.Order = order
	}
	if cmd.Flags().Changed("step") {
		cfg.Step = step
	}
	if cmd.Flags().Changed("t0") {
		cfg.T0 = tStart
	}
	if cmd.Flags().Changed("t1") {
		cfg.T1 = tEnd
	}
	if cmd.Flags().Changed("y0") {
		cfg.Y0 = append([]float64(nil), initState...)
	}

	if len(paramFlags) > 0 {
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64)
		}
		for _, kv := range paramFlags {
			name, val, ok := strings.Cut(kv, "=")
			if !ok {
				return nil, fmt.Errorf("malformed --param %q, want name=value", kv)
			}
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed --param %q: %w", kv, err)
			}
			cfg.Params[name] = f
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// assemble turns a configuration into a parameterized model and the
// system handed to the engine.
func assemble(cfg *config.Config) (model.Model, ode.System, error) {
	m, err := model.NewRegistry().Get(cfg.Model)
	if err != nil {
		return nil, ode.System{}, err
	}
	if err := model.Configure(m, cfg.Params); err != nil {
		return nil, ode.System{}, err
	}

	y0 := ode.State(cfg.Y0)
	if len(y0) == 0 {
		y0 = m.DefaultState()
	}

	sys := ode.System{RHS: m, Dim: m.Dim(), T0: cfg.T0, T1: cfg.T1, Y0: y0}
	return m, sys, nil
}

// analyticRef returns the closed-form position for models that have one,
// or nil. An oscillator parameterized outside its closed form (zeta >= 1)
// also yields nil, so those runs simply skip the comparison column.
func analyticRef(m model.Model, y0 ode.State) func(float64) float64 {
	switch mm := m.(type) {
	case *model.Decay:
		return func(t float64) float64 { return mm.Analytic(t, y0[0]) }
	case *model.HarmonicOscillator:
		if _, err := mm.AnalyticPosition(0, y0[0], y0[1]); err != nil {
			log.Debug("no closed form for this run", "err", err)
			return nil
		}
		return func(t float64) float64 {
			x, _ := mm.AnalyticPosition(t, y0[0], y0[1])
			return x
		}
	}
	return nil
}

func runIntegration(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	m, sys, err := assemble(cfg)
	if err != nil {
		return err
	}

	log.Debug("integrating", "model", cfg.Model, "order", cfg.Order, "h", cfg.Step,
		"span", cfg.T1-cfg.T0, "points", ode.GridSize(cfg.T0, cfg.T1, cfg.Step))

	start := time.Now()
	tr, err := ode.Solve(sys, ode.Order(cfg.Order), cfg.Step)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg, tr)
	if err != nil {
		return err
	}

	tLast, yLast := tr.Last()
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("points: %d\n", tr.Len())
	fmt.Printf("final: t=%g y=%v\n", tLast, []float64(yLast))

	if ref := analyticRef(m, sys.Y0); ref != nil {
		maxErr := 0.0
		for i := 0; i < tr.Len(); i++ {
			if e := math.Abs(tr.Y(i)[0] - ref(tr.Times[i])); e > maxErr {
				maxErr = e
			}
		}
		fmt.Printf("max error vs closed form: %.3e\n", maxErr)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := store.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tMETHOD\tH\tSPAN\tPOINTS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%g\t[%g, %g]\t%d\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Method,
			run.Step,
			run.T0, run.T1,
			run.Points,
		)
	}
	return w.Flush()
}

// loadRun fetches the metadata and trajectory of one stored run.
func loadRun(runID string) (*store.RunMetadata, *ode.Trajectory, error) {
	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, tr, nil
}

// runModel rebuilds the parameterized model a stored run used, for
// analytic reference columns.
func runModel(meta *store.RunMetadata) (model.Model, error) {
	m, err := model.NewRegistry().Get(meta.Model)
	if err != nil {
		return nil, err
	}
	if err := model.Configure(m, meta.Params); err != nil {
		return nil, err
	}
	return m, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s  method: %s  h=%g\n\n", meta.Model, meta.Method, meta.Step)

	for j := 0; j < tr.Dim; j++ {
		data := make([]float64, tr.Len())
		for i := 0; i < tr.Len(); i++ {
			data[i] = tr.Y(i)[j]
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("x%d vs time", j)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}

	portrait := analysis.PhasePortrait(tr, xAxis, yAxis)
	if portrait == nil {
		return fmt.Errorf("state dimension %d too small for axes x%d/x%d", tr.Dim, xAxis, yAxis)
	}

	fmt.Printf("phase portrait: %s (%s)\n", meta.ID, meta.Model)
	fmt.Printf("x-axis: x%d, y-axis: x%d\n\n", xAxis, yAxis)
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 70, 20))

	if outPath != "" {
		title := fmt.Sprintf("%s phase portrait (x%d vs x%d)", meta.Model, yAxis, xAxis)
		if err := export.WritePhasePNG(outPath, title, tr, xAxis, yAxis); err != nil {
			return err
		}
		log.Info("wrote phase portrait", "path", outPath)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}

	sp, err := analysis.PowerSpectrum(tr, column)
	if err != nil {
		return err
	}

	fmt.Printf("power spectrum: %s (%s), column x%d\n\n", meta.ID, meta.Model, column)
	plotData := sp.Power
	if len(plotData) >= 8 {
		// the high bins of a smooth trajectory are noise floor
		plotData = plotData[:len(plotData)/4]
	}
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (x%d)", column)),
	)
	fmt.Println(graph)
	fmt.Println()

	freq, power := sp.Dominant()
	fmt.Printf("dominant frequency: %.4f cycles per time unit (power %.3e)\n", freq, power)
	if freq > 0 {
		fmt.Printf("period: %.4f\n", 1.0/freq)
	}
	return nil
}

func convergenceStudy(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	_, sys, err := assemble(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("refinement study: %s over [%g, %g], h0=%g\n\n", cfg.Model, cfg.T0, cfg.T1, cfg.Step)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tH\tERROR\tOBSERVED ORDER")
	for _, o := range []ode.Order{ode.Euler, ode.Heun, ode.Kutta3, ode.RK4} {
		study, err := analysis.Converge(sys, o, cfg.Step, levels)
		if err != nil {
			return err
		}
		for i, p := range study.Points {
			obs := "-"
			if i > 0 {
				obs = fmt.Sprintf("%.2f", p.Observed)
			}
			fmt.Fprintf(w, "%s\t%g\t%.3e\t%s\n", o, p.Step, p.Error, obs)
		}
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}
	cfg := &config.Config{Model: meta.Model, Order: meta.Order, Step: meta.Step,
		T0: meta.T0, T1: meta.T1, Params: meta.Params}
	return export.WriteJSONTo(os.Stdout, export.Data(cfg, tr))
}

func exportDat(cmd *cobra.Command, args []string) error {
	runID := args[0]
	meta, tr, err := loadRun(runID)
	if err != nil {
		return err
	}

	var ref func(float64) float64
	if withAnalytic {
		m, err := runModel(meta)
		if err != nil {
			return err
		}
		if ref = analyticRef(m, tr.Y(0)); ref == nil {
			return fmt.Errorf("model %s has no closed-form solution", meta.Model)
		}
	}

	path := outPath
	if path == "" {
		path = runID + ".dat"
	}
	if err := export.WriteDat(path, tr, ref); err != nil {
		return err
	}
	log.Info("wrote dat file", "path", path)

	if withPlt {
		pltPath := strings.TrimSuffix(path, ".dat") + ".plt"
		if err := export.WriteGnuplot(pltPath, path, meta.Model, tr.Dim, ref != nil); err != nil {
			return err
		}
		log.Info("wrote gnuplot script", "path", pltPath)
	}
	return nil
}

func exportPNG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	meta, tr, err := loadRun(runID)
	if err != nil {
		return err
	}

	var ref func(float64) float64
	if withAnalytic {
		m, err := runModel(meta)
		if err != nil {
			return err
		}
		if ref = analyticRef(m, tr.Y(0)); ref == nil {
			return fmt.Errorf("model %s has no closed-form solution", meta.Model)
		}
	}

	path := outPath
	if path == "" {
		path = runID + ".png"
	}
	title := fmt.Sprintf("%s (%s, h=%g)", meta.Model, meta.Method, meta.Step)
	if err := export.WritePNG(path, title, tr, ref); err != nil {
		return err
	}
	log.Info("wrote png", "path", path)
	return nil
}

func exportHTML(cmd *cobra.Command, args []string) error {
	runID := args[0]
	meta, tr, err := loadRun(runID)
	if err != nil {
		return err
	}

	path := outPath
	if path == "" {
		path = runID + ".html"
	}
	subtitle := fmt.Sprintf("%s, h=%g, [%g, %g]", meta.Method, meta.Step, meta.T0, meta.T1)
	if err := export.WriteHTML(path, meta.Model, subtitle, tr); err != nil {
		return err
	}
	log.Info("wrote html chart", "path", path)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	m, sys, err := assemble(cfg)
	if err != nil {
		return err
	}
	if err := sys.Validate(); err != nil {
		return err
	}

	stepper, err := ode.NewStepper(ode.Order(cfg.Order), sys.Dim)
	if err != nil {
		return err
	}

	vm := viz.NewModel(m.Name(), sys.RHS, stepper, sys.Y0, sys.T0, sys.T1, cfg.Step)
	p := tea.NewProgram(vm)
	_, err = p.Run()
	return err
}
