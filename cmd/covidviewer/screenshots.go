package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ARM-02/covid-tracker/src/applog"
	"github.com/ARM-02/covid-tracker/src/charts"
	"github.com/ARM-02/covid-tracker/src/dataset"
)

func newScreenshotsCmd(v *viper.Viper, cfgFile *string) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "screenshots",
		Short: "Render every chart headlessly into PNG files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, tbl, err := setup(v, *cfgFile)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = filepath.Join(cfg.OutputDir, "screenshots")
			}
			written, err := RunScreenshotsMode(tbl, cfg.Variables, outDir)
			if err != nil {
				return err
			}
			applog.Infof("screenshots: wrote %d charts to %s", len(written), outDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "dir", "", "Output directory (default <out>/screenshots)")
	return cmd
}

// RunScreenshotsMode renders the histogram (unfiltered and per variable) and the
// pie chart and bar plot of every variable into outDir. It needs no window.
func RunScreenshotsMode(tbl *dataset.Table, variables []string, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create out dir: %w", err)
	}
	r := charts.NewRenderer(tbl, outDir, false)
	type job struct {
		name string
		kind charts.Kind
		sel  []string
	}
	jobs := []job{{"histogram_no_filters.png", charts.KindHistogram, nil}}
	for _, v := range variables {
		slug := strings.ToLower(v)
		jobs = append(jobs,
			job{"histogram_" + slug + ".png", charts.KindHistogram, []string{v}},
			job{"pie_chart_" + slug + ".png", charts.KindPie, []string{v}},
			job{"bar_plot_" + slug + ".png", charts.KindBarPlot, []string{v}},
		)
	}
	var written []string
	for _, j := range jobs {
		img, err := r.Render(j.kind, j.sel)
		if err != nil {
			return written, fmt.Errorf("render %s: %w", j.name, err)
		}
		p := filepath.Join(outDir, j.name)
		if err := writePNG(p, img); err != nil {
			return written, err
		}
		written = append(written, p)
	}
	return written, nil
}

func writePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("png encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
