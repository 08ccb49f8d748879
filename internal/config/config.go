// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/iwvelando/order-dashboard/pkg/constants"
	"github.com/iwvelando/order-dashboard/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for order-dashboard.
type Configuration struct {
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Chart   ChartConfig   `yaml:"chart,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, markdown, json
	Dir    string `yaml:"dir,omitempty"`    // export directory, empty for none
	XLSX   bool   `yaml:"xlsx,omitempty"`   // also export the consolidated workbook
}

// ChartConfig holds the rendered chart size in inches.
type ChartConfig struct {
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Configuration {
	return &Configuration{
		Output: OutputConfig{Format: constants.OutputFormatPretty},
		Chart: ChartConfig{
			Width:  constants.DefaultChartWidth,
			Height: constants.DefaultChartHeight,
		},
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

// LoadConfigurationOrDefault loads configPath, falling back to Default when
// the file does not exist and required is false.
func LoadConfigurationOrDefault(configPath string, required bool) (*Configuration, error) {
	if !required {
		if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
	}
	return LoadConfiguration(configPath)
}

// envKeys are the settings that can be overridden from the environment, e.g.
// output.format as ORDER_DASHBOARD_OUTPUT_FORMAT.
var envKeys = []string{
	"logging.level",
	"logging.format",
	"logging.outputFile",
	"output.format",
	"output.dir",
	"output.xlsx",
	"chart.width",
	"chart.height",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix("ORDER_DASHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		// BindEnv only fails without a key name
		_ = v.BindEnv(key)
	}

	d := Default()
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("chart.width", d.Chart.Width)
	v.SetDefault("chart.height", d.Chart.Height)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// ValidateConfiguration checks the configuration, resets invalid values to
// their defaults and returns a warning for each one.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	d := Default()

	if c.Output.Format == "" {
		c.Output.Format = d.Output.Format
	} else if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		warnings = append(warnings, fmt.Sprintf("%v; using %s", err, d.Output.Format))
		c.Output.Format = d.Output.Format
	}

	if c.Chart.Width <= 0 {
		warnings = append(warnings, fmt.Sprintf("chart width %.2f is not positive; using %.2f", c.Chart.Width, d.Chart.Width))
		c.Chart.Width = d.Chart.Width
	}
	if c.Chart.Height <= 0 {
		warnings = append(warnings, fmt.Sprintf("chart height %.2f is not positive; using %.2f", c.Chart.Height, d.Chart.Height))
		c.Chart.Height = d.Chart.Height
	}

	if err := validation.ValidateLogLevel(c.Logging.Level); err != nil {
		warnings = append(warnings, err.Error())
	}
	return warnings
}
