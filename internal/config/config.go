package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/trophyfit-cli/internal/dataset"
	"github.com/KaramelBytes/trophyfit-cli/internal/utils"
)

// Global configuration structure.
type Global struct {
	DataPath         string  `mapstructure:"data_path" yaml:"data_path"`
	Format           string  `mapstructure:"format" yaml:"format"`
	SampleRows       int     `mapstructure:"sample_rows" yaml:"sample_rows"`
	Outliers         bool    `mapstructure:"outliers" yaml:"outliers"`
	OutlierThreshold float64 `mapstructure:"outlier_threshold" yaml:"outlier_threshold"`
	LogLevel         string  `mapstructure:"log_level" yaml:"log_level"`

	// Raw CSV column positions of each player field
	Columns Columns `mapstructure:"columns" yaml:"columns"`
}

// Columns holds zero-based CSV positions.
type Columns struct {
	AttackWins      int `mapstructure:"attack_wins" yaml:"attack_wins"`
	DefenseWins     int `mapstructure:"defense_wins" yaml:"defense_wins"`
	Trophies        int `mapstructure:"trophies" yaml:"trophies"`
	Donations       int `mapstructure:"donations" yaml:"donations"`
	BuilderTrophies int `mapstructure:"builder_trophies" yaml:"builder_trophies"`
}

// Schema converts the configured positions into a dataset.Schema.
func (c Columns) Schema() dataset.Schema {
	return dataset.Schema{
		AttackWins:      c.AttackWins,
		DefenseWins:     c.DefenseWins,
		Trophies:        c.Trophies,
		Donations:       c.Donations,
		BuilderTrophies: c.BuilderTrophies,
	}
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".trophyfit"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.trophyfit/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file (cfgFile or ~/.trophyfit/config.yaml) > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("TROPHYFIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data_path", "CoC.csv")
	v.SetDefault("format", "text")
	v.SetDefault("sample_rows", 0)
	v.SetDefault("outliers", true)
	v.SetDefault("outlier_threshold", 3.5)
	v.SetDefault("log_level", "info")
	// Column defaults follow the Clash of Clans player export
	d := dataset.DefaultSchema
	v.SetDefault("columns.attack_wins", d.AttackWins)
	v.SetDefault("columns.defense_wins", d.DefenseWins)
	v.SetDefault("columns.trophies", d.Trophies)
	v.SetDefault("columns.donations", d.Donations)
	v.SetDefault("columns.builder_trophies", d.BuilderTrophies)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Columns.Schema().Validate(); err != nil {
		return nil, fmt.Errorf("invalid columns: %w", err)
	}
	return &c, nil
}
