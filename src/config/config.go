package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. COVIDVIEWER_DATA_PATH.
const EnvPrefix = "COVIDVIEWER"

type Config struct {
	DataPath       string   `mapstructure:"data_path"`
	OutputDir      string   `mapstructure:"output_dir"`
	WriteArtifacts bool     `mapstructure:"write_artifacts"`
	LogLevel       string   `mapstructure:"log_level"`
	Variables      []string `mapstructure:"variables"`
	WindowWidth    int      `mapstructure:"window_width"`
	WindowHeight   int      `mapstructure:"window_height"`
}

// New returns a viper instance with defaults and env binding applied. Callers may
// bind cobra flags onto it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("data_path", "clean_covid_data.csv")
	v.SetDefault("output_dir", ".")
	v.SetDefault("write_artifacts", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("variables", []string{"DIABETES", "RENAL_CHRONIC", "ASTHMA", "CARDIOVASCULAR"})
	v.SetDefault("window_width", 800)
	v.SetDefault("window_height", 800)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file (when path is non-empty) and unmarshals.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// env overrides arrive as a single comma separated string
	if len(cfg.Variables) == 1 && strings.Contains(cfg.Variables[0], ",") {
		cfg.Variables = strings.Split(cfg.Variables[0], ",")
	}
	cfg.Variables = normalizeVariables(cfg.Variables)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func normalizeVariables(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, s := range in {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Validate checks the settings the viewer cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataPath) == "" {
		return fmt.Errorf("data_path must not be empty")
	}
	if len(c.Variables) == 0 {
		return fmt.Errorf("at least one comorbidity variable is required")
	}
	if c.WindowWidth < 200 || c.WindowHeight < 200 {
		return fmt.Errorf("window size %dx%d too small", c.WindowWidth, c.WindowHeight)
	}
	return nil
}
