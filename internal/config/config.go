package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is flortctl's own configuration, read from
// ~/.config/flortctl/config.yaml and FLORTCTL_* environment variables. It is
// separate from the workspace settings store that holds profiles.
type Config struct {
	Tool    ToolConfig    `mapstructure:"tool" yaml:"tool"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Tree    TreeConfig    `mapstructure:"tree" yaml:"tree"`
}

// ToolConfig locates and bounds the external flort binary.
type ToolConfig struct {
	Path           string `mapstructure:"path" yaml:"path"`
	MaxOutputBytes int64  `mapstructure:"max_output_bytes" yaml:"max_output_bytes"`
}

// OutputConfig controls where run output is delivered.
type OutputConfig struct {
	// Dir overrides <workspace>/.flort/output when set.
	Dir       string `mapstructure:"dir" yaml:"dir"`
	Clipboard bool   `mapstructure:"clipboard" yaml:"clipboard"`
	Stdout    bool   `mapstructure:"stdout" yaml:"stdout"`
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	JSON   bool   `mapstructure:"json" yaml:"json"`
	ToFile bool   `mapstructure:"to_file" yaml:"to_file"`
}

// TreeConfig tunes the settings tree view.
type TreeConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// Default returns the configuration used when no file or env override exists.
func Default() Config {
	return Config{
		Tool: ToolConfig{
			Path:           "flort",
			MaxOutputBytes: 10 << 20,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
		Tree: TreeConfig{
			Debounce: 100 * time.Millisecond,
		},
	}
}

// Load reads configFile (if it exists) and FLORTCTL_* env overrides on top of
// Default. A missing file is not an error.
func Load(configFile string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix("FLORTCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return Config{}, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Tool.Path == "" {
		cfg.Tool.Path = "flort"
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("tool.path", d.Tool.Path)
	v.SetDefault("tool.max_output_bytes", d.Tool.MaxOutputBytes)
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.clipboard", d.Output.Clipboard)
	v.SetDefault("output.stdout", d.Output.Stdout)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.json", d.Logging.JSON)
	v.SetDefault("logging.to_file", d.Logging.ToFile)
	v.SetDefault("tree.debounce", d.Tree.Debounce)
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	return errors.Is(err, fs.ErrNotExist)
}
