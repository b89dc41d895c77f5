package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dgallion1/charterreview/internal/extract"
	"github.com/dgallion1/charterreview/internal/meta"
	"github.com/dgallion1/charterreview/internal/parser"
	"github.com/dgallion1/charterreview/internal/sections"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. CHARTER_REVIEWS_DIR.
const EnvPrefix = "CHARTER"

type Config struct {
	ReviewsDir   string `mapstructure:"reviews_dir"`
	TemplatesDir string `mapstructure:"templates_dir"`
	ProfilesFile string `mapstructure:"profiles_file"`

	AppType        string `mapstructure:"app_type"`
	CellStrategy   string `mapstructure:"cell_strategy"`
	ClassifyPolicy string `mapstructure:"classify_policy"`
	ReviewerSource string `mapstructure:"reviewer_source"`

	// Outputs. An empty Output means <school>_CompiledReviews.md in ReviewsDir.
	Output     string `mapstructure:"output"`
	HTMLOutput string `mapstructure:"html_output"`
	XLSXOutput string `mapstructure:"xlsx_output"`

	Workers             int  `mapstructure:"workers"`
	SkipDuplicateInputs bool `mapstructure:"skip_duplicate_inputs"`

	Log LogConfig `mapstructure:"log"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var defaults = map[string]any{
	"reviews_dir":           "",
	"templates_dir":         "",
	"profiles_file":         "",
	"app_type":              string(sections.Standard),
	"cell_strategy":         string(parser.CellSubstitute),
	"classify_policy":       string(extract.RunBlockFirst),
	"reviewer_source":       string(meta.Auto),
	"output":                "",
	"html_output":           "",
	"xlsx_output":           "",
	"workers":               1,
	"skip_duplicate_inputs": false,
	"log.level":             "info",
	"log.format":            "text",
}

// LoadDotEnv reads a .env file from the working directory when one exists.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load layers defaults, the optional YAML file at configPath, CHARTER_*
// environment variables and any flags in fs that were set explicitly.
// Flags are matched to keys by FlagKey.
func Load(configPath string, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		var bindErr error
		fs.VisitAll(func(f *pflag.Flag) {
			key := FlagKey(f.Name)
			if _, ok := defaults[key]; !ok || bindErr != nil {
				return
			}
			bindErr = v.BindPFlag(key, f)
		})
		if bindErr != nil {
			return Config{}, fmt.Errorf("bind flags: %w", bindErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// FlagKey maps a flag name to its configuration key: "log-level" is
// log.level and "reviews-dir" is reviews_dir.
func FlagKey(name string) string {
	if rest, ok := strings.CutPrefix(name, "log-"); ok {
		return "log." + rest
	}
	return strings.ReplaceAll(name, "-", "_")
}

// Validate checks everything a compile run depends on.
func (c Config) Validate() error {
	if c.ReviewsDir == "" {
		return fmt.Errorf("reviews_dir is required")
	}
	if fi, err := os.Stat(c.ReviewsDir); err != nil || !fi.IsDir() {
		return fmt.Errorf("reviews_dir %q is not a directory", c.ReviewsDir)
	}
	if c.TemplatesDir != "" {
		if fi, err := os.Stat(c.TemplatesDir); err != nil || !fi.IsDir() {
			return fmt.Errorf("templates_dir %q is not a directory", c.TemplatesDir)
		}
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if _, err := sections.ParseAppType(c.AppType); err != nil {
		return err
	}
	if _, err := parser.ParseCellStrategy(c.CellStrategy); err != nil {
		return err
	}
	if _, err := extract.ParsePolicy(c.ClassifyPolicy); err != nil {
		return err
	}
	if _, err := meta.ParseSource(c.ReviewerSource); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}
