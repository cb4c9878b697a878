package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/cropsim/internal/experiment"
	"github.com/san-kum/cropsim/internal/storage"
	"github.com/san-kum/cropsim/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tSEED\tSHADING\tROTATION\tBIOMASS\tSOC")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.0f%%\t%s\t%.0f\t%.2f\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Shading,
			run.Rotation,
			run.Metrics["final_biomass"],
			run.Metrics["final_soc"],
		)
	}
	return w.Flush()
}

var plotColumns = []struct {
	series, column, caption string
}{
	{"crop", "lai", "leaf area index"},
	{"crop", "b", "biomass (g/m2)"},
	{"water", "w", "soil water (mm)"},
	{"water", "arid", "ARID drought index"},
	{"carbon", "soc", "soil organic carbon (t C/ha)"},
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("name: %s (seed %d)\n\n", meta.Name, meta.Seed)

	loaded := map[string]storage.Series{}
	for _, pc := range plotColumns {
		ser, ok := loaded[pc.series]
		if !ok {
			if ser, err = st.LoadSeries(runID, pc.series); err != nil {
				return err
			}
			loaded[pc.series] = ser
		}
		chart := viz.Chart(ser.Column(pc.column), pc.caption, width, viz.DefaultHeight)
		if chart == "" {
			continue
		}
		fmt.Println(chart)
		fmt.Println()
	}
	return nil
}

// rerun reproduces a saved run from its stored config.
func rerun(cmd *cobra.Command, runID string) (*experiment.Result, error) {
	st := storage.New(dataDir)
	cfg, err := st.LoadConfig(runID)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return experiment.New(cfg).Run(cmd.Context())
}

func exportCSV(cmd *cobra.Command, args []string) error {
	res, err := rerun(cmd, args[0])
	if err != nil {
		return err
	}
	dir := outPath
	if dir == "" {
		dir = args[0] + "-csv"
	}
	paths, err := storage.ExportCSVDir(dir, res)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	res, err := rerun(cmd, args[0])
	if err != nil {
		return err
	}
	if outPath == "" {
		return storage.ExportJSON(os.Stdout, res)
	}
	return storage.ExportJSONFile(outPath, res)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	name, column, ok := strings.Cut(args[1], ".")
	if !ok {
		return fmt.Errorf("expected series.column, got %q", args[1])
	}
	ser, err := storage.New(dataDir).LoadSeries(runID, name)
	if err != nil {
		return err
	}
	values := ser.Column(column)
	if values == nil {
		return fmt.Errorf("series %s has no column %q (have %v)", name, column, ser.Header)
	}
	svg := viz.SeriesSVG(values, args[1], 800, 300, string(viz.CurrentTheme.Canopy))
	if svg == "" {
		return fmt.Errorf("%s: not enough points to plot", args[1])
	}

	path := outPath
	if path == "" {
		path = fmt.Sprintf("%s-%s-%s.svg", runID, name, column)
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	var (
		res *experiment.Result
		err error
	)
	if len(args) == 1 {
		res, err = rerun(cmd, args[0])
	} else {
		cfg, cerr := loadConfig(cmd)
		if cerr != nil {
			return cerr
		}
		res, err = experiment.New(cfg).Run(cmd.Context())
	}
	if err != nil {
		return err
	}
	return viz.RunLive(res)
}
