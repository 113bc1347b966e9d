package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/graycode/internal/gray"
	"github.com/san-kum/graycode/internal/report"
)

const (
	DefaultDataDir    = ".graycode"
	DefaultPlotWidth  = 60
	DefaultPlotHeight = 10
)

type Config struct {
	Mode    gray.Mode     `yaml:"mode"`
	Format  report.Format `yaml:"format"`
	DataDir string        `yaml:"data_dir"`
	Workers int           `yaml:"workers"`
	Plot    PlotConfig    `yaml:"plot"`
}

type PlotConfig struct {
	Enabled bool `yaml:"enabled"`
	Width   int  `yaml:"width"`
	Height  int  `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode:    gray.ModeGrayToBinary,
		Format:  report.FormatText,
		DataDir: DefaultDataDir,
		Plot: PlotConfig{
			Width:  DefaultPlotWidth,
			Height: DefaultPlotHeight,
		},
	}
}

// Load reads a YAML file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if _, err := report.ParseFormat(string(cfg.Format)); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
