package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/cropsim/internal/carbon"
	"github.com/san-kum/cropsim/internal/emergence"
	"github.com/san-kum/cropsim/internal/energy"
	"github.com/san-kum/cropsim/internal/experiment"
	"github.com/san-kum/cropsim/internal/photosynthesis"
	"github.com/san-kum/cropsim/internal/storage"
	"github.com/san-kum/cropsim/internal/viz"
	"github.com/san-kum/cropsim/internal/weather"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	start := time.Now()
	res, err := experiment.New(cfg).Run(cmd.Context())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg, res)
	if err != nil {
		return err
	}

	fmt.Println(viz.Summary(res))
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func writeWeather(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var days []weather.Day
	if year != 0 {
		client := weather.NewArchiveClient()
		client.Logger = slog.Default()
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()
		if days, err = client.Fetch(ctx, lat, lon, year); err != nil {
			return err
		}
	} else if days, err = experiment.LoadWeather(cfg); err != nil {
		return err
	}

	if outPath == "" {
		return weather.WriteCSV(os.Stdout, days)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := weather.WriteCSV(f, days); err != nil {
		f.Close()
		return err
	}
	slog.Info("weather written", "path", outPath, "days", len(days))
	return f.Close()
}

func runEmergence(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	res, err := experiment.New(cfg).Run(cmd.Context())
	if err != nil {
		return err
	}

	target := cfg.Germination.Target
	gddDay := emergence.DayReached(res.Emergence, target, emergence.GDD)
	ettDay := emergence.DayReached(res.Emergence, target, emergence.ETT)

	pct := make([]float64, len(res.Emergence))
	gdd := make([]float64, len(res.Emergence))
	for i, s := range res.Emergence {
		pct[i] = s.EmergencePct
		gdd[i] = emergence.Percent(s.GDDCum, target)
	}
	fmt.Println(viz.ChartMany([][]float64{pct, gdd},
		"emergence % by ETT (green) and GDD (red)", width, viz.DefaultHeight))
	fmt.Println()
	fmt.Printf("target: %.0f °C·d, shading %.0f%%\n", target, cfg.Shading)
	fmt.Printf("emergence by GDD: %s\n", dayLabel(gddDay))
	fmt.Printf("emergence by ETT: %s\n", dayLabel(ettDay))
	return nil
}

func dayLabel(day int) string {
	if day == 0 {
		return "not reached"
	}
	return fmt.Sprintf("day %d", day)
}

func runCarbon(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	res, err := experiment.New(cfg).Run(cmd.Context())
	if err != nil {
		return err
	}

	cp := cfg.Carbon
	cp.ET0 = res.Scenario.Soil(cfg.Soil).ET0
	cmp := carbon.Compare(cp, res.Months)
	if len(cmp.Scenario) == 0 {
		return fmt.Errorf("no carbon records: empty climate")
	}

	fmt.Println(viz.CarbonComparison(cmp, width))
	fmt.Println()

	last := cmp.Scenario[len(cmp.Scenario)-1]
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POOL\tt C/ha")
	for _, row := range []struct {
		name string
		v    float64
	}{
		{"DPM", last.DPM}, {"RPM", last.RPM}, {"BIO", last.BIO}, {"HUM", last.HUM}, {"IOM", last.IOM}, {"SOC", last.SOC},
	} {
		fmt.Fprintf(w, "%s\t%.2f\n", row.name, row.v)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nrotation: %s, %d years\n", cp.Rotation, cp.Years)
	fmt.Printf("SOC change vs baseline: %+.2f t C/ha\n", cmp.Delta())
	return nil
}

func runEnergy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	steps := energy.SimulateDiurnal(cfg.Energy.Days, cfg.Shading, cfg.Energy.Canopy)
	unconverged := 0
	for _, s := range steps {
		if !s.Converged {
			unconverged++
			slog.Warn("energy balance did not converge", "time", s.Time, "hour", s.Hour)
		}
	}

	fmt.Println(viz.DiurnalChart(steps, width))
	fmt.Println()
	perDay := len(steps) / max(cfg.Energy.Days, 1)
	for d := 0; d < cfg.Energy.Days && perDay > 0; d++ {
		fmt.Printf("day %d ET: %.2f mm\n", d+1, energy.DailyET(steps[d*perDay:(d+1)*perDay]))
	}
	if unconverged > 0 {
		fmt.Printf("%d of %d steps did not converge\n", unconverged, len(steps))
	}
	return nil
}

func runFarquhar(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	in := cfg.Farquhar
	rates := photosynthesis.Compute(in)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RATE\tµmol/m2/s")
	fmt.Fprintf(w, "rubisco (Wc)\t%.2f\n", rates.Rubisco)
	fmt.Fprintf(w, "light (Wj)\t%.2f\n", rates.Light)
	fmt.Fprintf(w, "tpu (Ws)\t%.2f\n", rates.Sink)
	fmt.Fprintf(w, "respiration\t%.2f\n", rates.Respiration)
	fmt.Fprintf(w, "net (An)\t%.2f\n", rates.Net)
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("limited by: %s\n\n", rates.Limitation())

	fmt.Println(viz.CurveChart(photosynthesis.CO2Response(in.Vmax, in.Jmax, in.TempC), "An vs CO2 (10-1000 ppm)", width))
	fmt.Println()
	fmt.Println(viz.CurveChart(photosynthesis.LightResponse(in.Vmax, in.Jmax, in.TempC), "An vs APAR (0-2000)", width))
	fmt.Println()
	fmt.Println(viz.CurveChart(photosynthesis.TemperatureResponse(in, 0, 45), "An vs leaf temperature (0-45 °C)", width))
	return nil
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	grid, err := experiment.NewRegistry().Grid(param)
	if err != nil {
		return err
	}
	days, err := experiment.LoadWeather(cfg)
	if err != nil {
		return err
	}

	// observations come from the configured crop, so the grid should recover
	// its value up to the noise
	truth, err := experiment.New(cfg, experiment.WithWeather(days)).Run(cmd.Context())
	if err != nil {
		return err
	}
	obs := experiment.SyntheticObservations(truth.Crop, sigma, weather.NewSource(cfg.Seed+1))

	cal, err := experiment.Calibrate(cmd.Context(), days, cfg.Crop, param, grid, obs)
	if err != nil {
		return err
	}

	rmse := make([]float64, len(cal.Points))
	for i, p := range cal.Points {
		rmse[i] = p.RMSE
	}
	fmt.Println(viz.Chart(rmse, fmt.Sprintf("RMSE over %s grid", param), width, viz.DefaultHeight))
	fmt.Println()
	fmt.Printf("configured %s: %.3f\n", param, cfg.Crop.GetParams()[param])
	fmt.Printf("best %s: %.3f (RMSE %.1f g/m2, final biomass %.0f g/m2)\n",
		param, cal.Best.Value, cal.Best.RMSE, cal.Best.FinalBiomass)
	return nil
}

func runSensitivity(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	days, err := experiment.LoadWeather(cfg)
	if err != nil {
		return err
	}
	days = experiment.Shading(cfg.ShadingFraction()).Weather().Apply(days)

	rows, err := experiment.Sensitivity(days, cfg.Crop, span, experiment.SensitivityParams)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARAM\tLEVEL\tVALUE\tFINAL BIOMASS")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%.4g\t%.1f\n", r.Param, r.Level, r.Value, r.FinalBiomass)
	}
	return w.Flush()
}

func runAgrivoltaic(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pct := cfg.Shading
	if pct == 0 {
		pct = 40
		slog.Info("no shading set, comparing against default panel cover", "shading", pct)
	}

	cmp, err := experiment.Agrivoltaic(cmd.Context(), cfg, pct)
	if err != nil {
		return err
	}
	fmt.Printf("open field vs %.0f%% shading\n\n", pct)
	fmt.Println(viz.CompareTable(cmp))
	fmt.Println(viz.ChartMany([][]float64{
		biomassOf(cmp.Scenario), biomassOf(cmp.Baseline),
	}, "biomass shaded (green) vs open (red)", width, viz.DefaultHeight))
	return nil
}

func biomassOf(res *experiment.Result) []float64 {
	out := make([]float64, len(res.Crop))
	for i, s := range res.Crop {
		out[i] = s.B
	}
	return out
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if numRuns < 1 {
		return fmt.Errorf("--runs must be at least 1, got %d", numRuns)
	}
	start := time.Now()
	results, err := experiment.NewEnsemble(cfg, numRuns, cfg.Seed).Run(cmd.Context())
	if err != nil {
		return err
	}
	slog.Info("ensemble complete", "runs", len(results), "elapsed", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tSTD\tMIN\tMAX")
	for _, name := range experiment.MetricOrder() {
		s := experiment.Summarize(results, name)
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.2f\n", name, s.Mean, s.Std, s.Min, s.Max)
	}
	return w.Flush()
}

func listRotations(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tBIOMASS (Mg/ha)")
	for _, key := range carbon.ListRotations() {
		r, err := carbon.GetRotation(key)
		if err != nil {
			return err
		}
		parts := make([]string, r.Len())
		for i := range r.Biomass {
			b, legume := r.Year(i)
			parts[i] = fmt.Sprintf("%g", b)
			if legume {
				parts[i] += "*"
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", key, r.Name, strings.Join(parts, " / "))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println("\n* legume year")
	return nil
}
