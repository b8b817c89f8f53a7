package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/trophyfit-cli/internal/analysis"
	"github.com/KaramelBytes/trophyfit-cli/internal/regression"
	"github.com/KaramelBytes/trophyfit-cli/internal/utils"
)

var (
	anaOutputPath string
	anaFormat     string
	anaSampleRows int
	anaOutliers   bool
	anaOutlierThr float64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Fit trophies on player stats and report fit quality",
	Long:  "Fit a linear regression of trophies on attack wins, defense wins, donations and builder trophies. The file defaults to data_path from config.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		path := c.DataPath
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("no input file: pass one or set data_path")
		}

		opt := analysis.DefaultOptions()
		opt.Schema = c.Columns.Schema()
		opt.SampleRows = c.SampleRows
		opt.Outliers = c.Outliers
		opt.OutlierThreshold = c.OutlierThreshold
		format := c.Format

		f := cmd.Flags()
		if f.Changed("sample-rows") {
			opt.SampleRows = anaSampleRows
		}
		if f.Changed("outliers") {
			opt.Outliers = anaOutliers
		}
		if f.Changed("outlier-threshold") && anaOutlierThr > 0 {
			opt.OutlierThreshold = anaOutlierThr
		}
		if f.Changed("format") {
			format = anaFormat
		}

		rep, err := analysis.Run(path, regression.NewOLS(), opt)
		if err != nil {
			return err
		}
		out, err := rep.Render(format)
		if err != nil {
			return err
		}

		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, []byte(out)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote analysis to %s\n", anaOutputPath)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the report")
	analyzeCmd.Flags().StringVar(&anaFormat, "format", "text", "report format: text|markdown (overrides config)")
	analyzeCmd.Flags().IntVar(&anaSampleRows, "sample-rows", 0, "number of predictions to print (0 = all)")
	analyzeCmd.Flags().BoolVar(&anaOutliers, "outliers", true, "count robust residual outliers (MAD)")
	analyzeCmd.Flags().Float64Var(&anaOutlierThr, "outlier-threshold", 3.5, "robust |z| threshold for residual outliers")
}
