package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ARM-02/covid-tracker/src/applog"
	"github.com/ARM-02/covid-tracker/src/charts"
	"github.com/ARM-02/covid-tracker/src/config"
	"github.com/ARM-02/covid-tracker/src/dataset"
	"github.com/ARM-02/covid-tracker/src/wizard"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var cfgFile string
	root := &cobra.Command{
		Use:           "covidviewer",
		Short:         "Click-through chart viewer for the COVID-19 patient dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, tbl, err := setup(v, cfgFile)
			if err != nil {
				return err
			}
			return runViewer(cfg, tbl)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Optional config file (yaml, json or toml)")
	pf.String("data", "", "Dataset path (.csv or .xlsx)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("out", "", "Directory chart PNGs are written to")
	_ = v.BindPFlag("data_path", pf.Lookup("data"))
	_ = v.BindPFlag("log_level", pf.Lookup("log-level"))
	_ = v.BindPFlag("output_dir", pf.Lookup("out"))

	root.AddCommand(newScreenshotsCmd(v, &cfgFile))
	return root
}

// setup loads config, applies the log level and reads the dataset.
func setup(v *viper.Viper, cfgFile string) (*config.Config, *dataset.Table, error) {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, nil, err
	}
	applog.ApplyLevel(cfg.LogLevel)
	tbl, err := dataset.Load(cfg.DataPath, cfg.Variables)
	if err != nil {
		applog.Errorf("cannot load dataset %s: %v", cfg.DataPath, err)
		return nil, nil, fmt.Errorf("load dataset: %w", err)
	}
	return cfg, tbl, nil
}

func runViewer(cfg *config.Config, tbl *dataset.Table) error {
	a := app.NewWithID("com.covidtracker.viewer")
	w := a.NewWindow("Graph Interface")
	width, height := float32(cfg.WindowWidth), float32(cfg.WindowHeight)
	pc := newPageCanvas(width, height)
	w.SetContent(pc)
	w.Resize(fyne.NewSize(width, height))
	w.SetFixedSize(true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.SetOnClosed(pc.close)

	renderer := charts.NewRenderer(tbl, cfg.OutputDir, cfg.WriteArtifacts)
	loop := wizard.NewLoop(cfg.Variables, renderer)
	view := newFyneView(pc)
	done := make(chan error, 1)
	go func() {
		done <- loop.Run(ctx, pc, view)
	}()

	applog.Infof("viewer started: %d records, variables %v", tbl.Len(), cfg.Variables)
	w.ShowAndRun()
	pc.close()
	cancel()
	// the UI thread is gone; a loop stuck in a final redraw is abandoned
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("navigation loop: %w", err)
		}
	case <-time.After(2 * time.Second):
		applog.Warnf("navigation loop did not stop after window close")
	}
	return nil
}
