package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/tableup"
	"github.com/iw2rmb/tableup/internal/logging"
)

const envPrefix = "TABLEUP"

// config is the demo configuration, read from flags, TABLEUP_* environment
// variables and an optional config file, in that order of precedence.
type config struct {
	LogLevel  string `mapstructure:"log-level" yaml:"log-level"`
	LogFormat string `mapstructure:"log-format" yaml:"log-format"`
	LogFile   string `mapstructure:"log-file" yaml:"log-file,omitempty"`

	ColumnWidth    int           `mapstructure:"column-width" yaml:"column-width"`
	MinColumnWidth int           `mapstructure:"min-column-width" yaml:"min-column-width"`
	RowHeight      int           `mapstructure:"row-height" yaml:"row-height"`
	MinRowHeight   int           `mapstructure:"min-row-height" yaml:"min-row-height"`
	Palette        []string      `mapstructure:"palette" yaml:"palette,omitempty"`
	PickerRows     int           `mapstructure:"picker-rows" yaml:"picker-rows"`
	PickerCols     int           `mapstructure:"picker-cols" yaml:"picker-cols"`
	ResizeDebounce time.Duration `mapstructure:"resize-debounce" yaml:"resize-debounce"`
}

func addConfigFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (yaml, toml or json)")
	fs.String("log-level", "info", "log level: "+strings.Join(logging.Levels, ", "))
	fs.String("log-format", "text", "log format: "+strings.Join(logging.Formats, ", "))
	fs.String("log-file", "", "write logs to this file; logs are discarded when empty")

	fs.Int("column-width", 100, "default column width in pixels")
	fs.Int("min-column-width", 26, "minimum column width in pixels")
	fs.Int("row-height", 36, "default row height in pixels")
	fs.Int("min-row-height", 36, "minimum row height in pixels")
	fs.StringSlice("palette", nil, "cell background palette (comma separated colors)")
	fs.Int("picker-rows", 8, "rows of the table size picker")
	fs.Int("picker-cols", 8, "columns of the table size picker")
	fs.Duration("resize-debounce", 50*time.Millisecond, "minimum interval between live resize commits")
}

func loadConfig(fs *pflag.FlagSet) (config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return config{}, err
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, fmt.Errorf("decode config: %w", err)
	}
	if _, err := logging.GetLevel(cfg.LogLevel); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c config) moduleOptions() tableup.Options {
	return tableup.Options{
		DefaultColumnWidth: c.ColumnWidth,
		MinColumnWidth:     c.MinColumnWidth,
		DefaultRowHeight:   c.RowHeight,
		MinRowHeight:       c.MinRowHeight,
		Palette:            c.Palette,
		SelectBoxRows:      c.PickerRows,
		SelectBoxCols:      c.PickerCols,
		ResizeDebounce:     c.ResizeDebounce,
	}
}

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return writeConfig(cmd.OutOrStdout(), cfg)
		},
	}
}

// writeConfig writes cfg in the format read by --config.
func writeConfig(w io.Writer, cfg config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
