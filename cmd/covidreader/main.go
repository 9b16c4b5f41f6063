package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v3"

	"github.com/ARM-02/covid-tracker/src/applog"
	"github.com/ARM-02/covid-tracker/src/charts"
	"github.com/ARM-02/covid-tracker/src/config"
	"github.com/ARM-02/covid-tracker/src/dataset"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	v := config.New()
	var cfgFile string
	root := &cobra.Command{
		Use:           "covidreader",
		Short:         "Inspect, generate and export the COVID-19 patient dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			applog.SetOutput(cmd.ErrOrStderr())
		},
	}
	root.SetOut(out)
	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Optional config file")
	pf.String("data", "", "Dataset path (.csv or .xlsx)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	_ = v.BindPFlag("data_path", pf.Lookup("data"))
	_ = v.BindPFlag("log_level", pf.Lookup("log-level"))

	// loadConfig reads flags, env and the config file, then applies the log level.
	loadConfig := func() (*config.Config, error) {
		cfg, err := config.Load(v, cfgFile)
		if err != nil {
			return nil, err
		}
		applog.ApplyLevel(cfg.LogLevel)
		return cfg, nil
	}
	loadTable := func() (*config.Config, *dataset.Table, error) {
		cfg, err := loadConfig()
		if err != nil {
			return nil, nil, err
		}
		tbl, err := dataset.Load(cfg.DataPath, cfg.Variables)
		if err != nil {
			return nil, nil, err
		}
		return cfg, tbl, nil
	}

	var bucketVar string
	summary := &cobra.Command{
		Use:   "summary",
		Short: "Print per-variable code and death counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, tbl, err := loadTable()
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), tbl, cfg.Variables, bucketVar)
		},
	}
	summary.Flags().StringVar(&bucketVar, "buckets", "", "Also print the age-bucket table for this variable")

	var rows, deathRate int
	var seed int64
	var sampleOut string
	sample := &cobra.Command{
		Use:   "sample",
		Short: "Write a synthetic dataset in the expected schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if sampleOut != "" && sampleOut != "-" {
				f, err := os.Create(sampleOut)
				if err != nil {
					return fmt.Errorf("create %s: %w", sampleOut, err)
				}
				defer f.Close()
				w = f
			}
			opts := dataset.SynthOptions{Rows: rows, Seed: seed, Variables: cfg.Variables, DeathRatePct: deathRate}
			if err := dataset.WriteSynthetic(w, opts); err != nil {
				return err
			}
			applog.Infof("sample: wrote %d rows (seed %d)", rows, seed)
			return nil
		},
	}
	sample.Flags().IntVarP(&rows, "rows", "n", 1000, "Number of rows")
	sample.Flags().Int64Var(&seed, "seed", 1, "Random seed; equal seeds give equal files")
	sample.Flags().IntVar(&deathRate, "death-rate", 8, "Base share of rows with a death date, in percent")
	sample.Flags().StringVarP(&sampleOut, "output", "o", "-", "Output CSV path, - for stdout")

	var xlsxOut string
	export := &cobra.Command{
		Use:   "export-xlsx",
		Short: "Write pie and bar plot aggregates to an XLSX workbook, one sheet per variable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, tbl, err := loadTable()
			if err != nil {
				return err
			}
			if err := writeWorkbook(xlsxOut, tbl, cfg.Variables); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", xlsxOut)
			return nil
		},
	}
	export.Flags().StringVarP(&xlsxOut, "output", "o", "covid_summary.xlsx", "Workbook path")

	root.AddCommand(summary, sample, export)
	return root
}

func writeSummary(w io.Writer, tbl *dataset.Table, variables []string, bucketVar string) error {
	fmt.Fprintf(w, "Total records: %d\n\n", tbl.Len())
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VARIABLE\tNAME\tHAD IT\tDID NOT\tUNKNOWN\tDIED(HAD)\tDIED(NOT)\tDIED(UNK)")
	for _, v := range variables {
		s := charts.Summarize(tbl, v)
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\n", v, dataset.DisplayName(v), s.Present, s.Absent, s.Unknown, s.DiedPresent, s.DiedAbsent, s.DiedUnknown)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if bucketVar == "" {
		return nil
	}
	bucketVar = strings.ToUpper(bucketVar)
	if !tbl.HasVariable(bucketVar) {
		return fmt.Errorf("variable %s not loaded (have %v)", bucketVar, tbl.Variables())
	}
	bp := charts.BarPlot(tbl, bucketVar)
	fmt.Fprintf(w, "\n%s\n", bp.Title())
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BUCKET\tAGES\tTOTAL\tSURVIVED\tDIED\tSURVIVED%\tDIED%")
	for _, s := range bp.Buckets {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%.1f\t%.1f\n", s.Bucket.Label(), s.Bucket.Range(), s.Total, s.Survived, s.Died, s.SurvivedPct, s.DiedPct)
	}
	return tw.Flush()
}

// writeWorkbook stores the pie and bar plot aggregates of each variable on its own sheet.
func writeWorkbook(path string, tbl *dataset.Table, variables []string) error {
	wb := xlsx.NewFile()
	for _, v := range variables {
		name := v
		if len(name) > 31 {
			name = name[:31]
		}
		sh, err := wb.AddSheet(name)
		if err != nil {
			return fmt.Errorf("add sheet %s: %w", name, err)
		}
		addRow(sh, "Pie Chart for "+v, dataset.DisplayName(v))
		addRow(sh, "Category", "Died", "Survived")
		pie := charts.PieChart(tbl, v)
		for i, l := range pie.Labels() {
			r := sh.AddRow()
			r.AddCell().SetString(l)
			r.AddCell().SetInt(pie.Died[i])
			r.AddCell().SetInt(pie.Survived[i])
		}
		addRow(sh)
		bp := charts.BarPlot(tbl, v)
		addRow(sh, bp.Title())
		addRow(sh, "Bucket", "Total", "Survived", "Died", "Survived %", "Died %")
		for _, s := range bp.Buckets {
			r := sh.AddRow()
			r.AddCell().SetString(s.Bucket.Label())
			r.AddCell().SetInt(s.Total)
			r.AddCell().SetInt(s.Survived)
			r.AddCell().SetInt(s.Died)
			r.AddCell().SetFloat(s.SurvivedPct)
			r.AddCell().SetFloat(s.DiedPct)
		}
	}
	if err := wb.Save(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func addRow(sh *xlsx.Sheet, values ...string) {
	r := sh.AddRow()
	for _, v := range values {
		r.AddCell().SetString(v)
	}
}
