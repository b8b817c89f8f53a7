package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/trophyfit-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set trophyfit configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "data_path: %s\n", c.DataPath)
		fmt.Fprintf(out, "format: %s\n", c.Format)
		fmt.Fprintf(out, "sample_rows: %d\n", c.SampleRows)
		fmt.Fprintf(out, "outliers: %t\n", c.Outliers)
		fmt.Fprintf(out, "outlier_threshold: %.2f\n", c.OutlierThreshold)
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		for _, col := range c.Columns.Schema().Columns() {
			fmt.Fprintf(out, "columns.%s: %d\n", col.Name, col.Index)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		if err := applySetting(c, args[0], args[1]); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func applySetting(c *cfgpkg.Global, key, val string) error {
	if name, ok := strings.CutPrefix(key, "columns."); ok {
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid column index for %s: %v", key, val)
		}
		switch name {
		case "attack_wins":
			c.Columns.AttackWins = i
		case "defense_wins":
			c.Columns.DefenseWins = i
		case "trophies":
			c.Columns.Trophies = i
		case "donations":
			c.Columns.Donations = i
		case "builder_trophies":
			c.Columns.BuilderTrophies = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		return nil
	}
	switch key {
	case "data_path":
		c.DataPath = val
	case "format":
		switch strings.ToLower(val) {
		case "text", "markdown":
			c.Format = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid format: %s (use text or markdown)", val)
		}
	case "sample_rows":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for sample_rows: %v", val)
		}
		c.SampleRows = i
	case "outliers":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for outliers: %w", err)
		}
		c.Outliers = b
	case "outlier_threshold":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid float for outlier_threshold: %v", val)
		}
		c.OutlierThreshold = f
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "error", "disabled":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
