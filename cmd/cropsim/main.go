package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/cropsim/internal/config"
)

var (
	dataDir     string
	configFile  string
	preset      string
	seed        int64
	shading     float64
	days        int
	weatherFile string
	verbose     bool
	width       int
	outPath     string
	// weather fetch
	lat, lon float64
	year     int
	// analysis
	param    string
	sigma    float64
	span     float64
	numRuns  int
	rotation string
	years    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "cropsim",
		Short:         "crop, soil water and soil carbon teaching simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".cropsim", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", config.DefaultSeed, "random seed for synthetic weather")
	pf.Float64Var(&shading, "shading", 0, "panel shading in percent")
	pf.IntVar(&days, "days", 200, "length of the synthetic season")
	pf.StringVar(&weatherFile, "weather-file", "", "daily weather CSV instead of synthetic weather")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.IntVar(&width, "width", 70, "chart width")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the full daily chain and carbon projection, and save it",
		RunE:  runSimulation,
	}

	weatherCmd := &cobra.Command{
		Use:   "weather",
		Short: "write a synthetic or fetched weather series as CSV",
		RunE:  writeWeather,
	}
	weatherCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	weatherCmd.Flags().Float64Var(&lat, "lat", 0, "latitude for archive fetch")
	weatherCmd.Flags().Float64Var(&lon, "lon", 0, "longitude for archive fetch")
	weatherCmd.Flags().IntVar(&year, "year", 0, "fetch this year from the weather archive instead of generating")

	emergenceCmd := &cobra.Command{
		Use:   "emergence",
		Short: "seedling emergence by growing degree days and effective thermal time",
		RunE:  runEmergence,
	}

	carbonCmd := &cobra.Command{
		Use:   "carbon",
		Short: "soil carbon projection against the conventional baseline",
		RunE:  runCarbon,
	}
	carbonCmd.Flags().StringVar(&rotation, "rotation", "", "rotation key (see rotations)")
	carbonCmd.Flags().IntVar(&years, "years", 0, "projection length in years")

	energyCmd := &cobra.Command{
		Use:   "energy",
		Short: "diurnal canopy energy balance",
		RunE:  runEnergy,
	}

	farquharCmd := &cobra.Command{
		Use:   "farquhar",
		Short: "leaf photosynthesis rates and response curves",
		RunE:  runFarquhar,
	}

	calibrateCmd := &cobra.Command{
		Use:   "calibrate",
		Short: "grid-search one crop parameter against noisy synthetic biomass",
		RunE:  runCalibrate,
	}
	calibrateCmd.Flags().StringVar(&param, "param", "rue", "parameter to calibrate")
	calibrateCmd.Flags().Float64Var(&sigma, "sigma", 150, "observation noise (g/m2)")

	sensitivityCmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "one-at-a-time sensitivity of final biomass",
		RunE:  runSensitivity,
	}
	sensitivityCmd.Flags().Float64Var(&span, "span", 0.2, "relative perturbation")

	agrivoltaicCmd := &cobra.Command{
		Use:   "agrivoltaic",
		Short: "compare open field against panel shading",
		RunE:  runAgrivoltaic,
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run consecutive weather seeds in parallel and summarize",
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 10, "number of seeds")

	rotationsCmd := &cobra.Command{
		Use:   "rotations",
		Short: "list crop rotations",
		RunE:  listRotations,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export every series of a run to a CSV directory",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output directory (default <run_id>-csv)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run with all trajectories as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [series.column]",
		Short: "write one column of a run as an SVG line plot",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <run_id>-<series>-<column>.svg)")

	liveCmd := &cobra.Command{
		Use:   "live [run_id]",
		Short: "replay a season day by day",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}

	rootCmd.AddCommand(runCmd, weatherCmd, emergenceCmd, carbonCmd, energyCmd, farquharCmd,
		calibrateCmd, sensitivityCmd, agrivoltaicCmd, ensembleCmd, rotationsCmd, presetsCmd,
		listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, liveCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func setupLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadConfig starts from the preset, then the config file, then applies any
// flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("shading") {
		cfg.Shading = shading
	}
	if flags.Changed("days") {
		cfg.Weather.Days = days
	}
	if flags.Changed("weather-file") {
		cfg.WeatherFile = weatherFile
	}
	if flags.Lookup("rotation") != nil && flags.Changed("rotation") {
		cfg.Carbon.Rotation = rotation
	}
	if flags.Lookup("years") != nil && flags.Changed("years") {
		cfg.Carbon.Years = years
	}
	return cfg, cfg.Validate()
}
