package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/edareport-cli/internal/dataset"
	"github.com/KaramelBytes/edareport-cli/internal/pipeline"
	"github.com/KaramelBytes/edareport-cli/internal/render"
)

// Global configuration structure.
type Global struct {
	CandidatePaths  []string `mapstructure:"candidate_paths" yaml:"candidate_paths" validate:"min=1,dive,required"`
	OutputDir       string   `mapstructure:"output_dir" yaml:"output_dir" validate:"required"`
	MaxPairplotCols int      `mapstructure:"max_pairplot_cols" yaml:"max_pairplot_cols" validate:"min=1"`
	GridCols        int      `mapstructure:"grid_cols" yaml:"grid_cols" validate:"min=1"`
	HistBins        int      `mapstructure:"hist_bins" yaml:"hist_bins" validate:"min=1,max=1000"`
	CellWidthIn     float64  `mapstructure:"cell_width_in" yaml:"cell_width_in" validate:"gt=0,lte=40"`
	CellHeightIn    float64  `mapstructure:"cell_height_in" yaml:"cell_height_in" validate:"gt=0,lte=40"`

	// Parsing. Empty values mean auto-detect (delimiter) or plain floats
	// (separators).
	Delimiter          string `mapstructure:"delimiter" yaml:"delimiter"`
	DecimalSeparator   string `mapstructure:"decimal_separator" yaml:"decimal_separator"`
	ThousandsSeparator string `mapstructure:"thousands_separator" yaml:"thousands_separator"`
	Sheet              string `mapstructure:"sheet" yaml:"sheet"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn warning error"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format" validate:"oneof=text json"`
}

// Default returns the built-in configuration.
func Default() *Global {
	p := pipeline.DefaultConfig()
	r := render.DefaultOptions()
	return &Global{
		CandidatePaths:  p.CandidatePaths,
		OutputDir:       p.OutputDir,
		MaxPairplotCols: r.MaxPairplotCols,
		GridCols:        r.GridCols,
		HistBins:        r.Bins,
		CellWidthIn:     float64(r.CellWidth / vg.Inch),
		CellHeightIn:    float64(r.CellHeight / vg.Inch),
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// DefaultPath returns ~/.edareport/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".edareport", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.edareport/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command flags are applied on top
// by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("EDAREPORT")
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("candidate_paths", d.CandidatePaths)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("max_pairplot_cols", d.MaxPairplotCols)
	v.SetDefault("grid_cols", d.GridCols)
	v.SetDefault("hist_bins", d.HistBins)
	v.SetDefault("cell_width_in", d.CellWidthIn)
	v.SetDefault("cell_height_in", d.CellHeightIn)
	v.SetDefault("delimiter", "")
	v.SetDefault("decimal_separator", "")
	v.SetDefault("thousands_separator", "")
	v.SetDefault("sheet", "")
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".edareport"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field constraints and that the separators parse.
func (c *Global) Validate() error {
	var problems []string
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate config: %w", err)
		}
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
	}
	if _, err := c.parseOptions(); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

func (c *Global) parseOptions() (dataset.ParseOptions, error) {
	var opt dataset.ParseOptions
	var err error
	if opt.Delimiter, err = ParseDelimiter(c.Delimiter); err != nil {
		return opt, fmt.Errorf("delimiter: %w", err)
	}
	if opt.DecimalSeparator, err = ParseSeparator(c.DecimalSeparator); err != nil {
		return opt, fmt.Errorf("decimal_separator: %w", err)
	}
	if opt.ThousandsSeparator, err = ParseSeparator(c.ThousandsSeparator); err != nil {
		return opt, fmt.Errorf("thousands_separator: %w", err)
	}
	if opt.DecimalSeparator != 0 && opt.DecimalSeparator == opt.ThousandsSeparator {
		return opt, errors.New("decimal_separator and thousands_separator must differ")
	}
	opt.Sheet = strings.TrimSpace(c.Sheet)
	return opt, nil
}

var separatorNames = map[string]rune{
	"comma": ',', "semicolon": ';', "tab": '\t', "pipe": '|',
	"dot": '.', "period": '.', "space": ' ', "apostrophe": '\'', "underscore": '_',
}

// ParseDelimiter accepts a single character, "\t", or a name such as
// "comma", "semicolon", "tab" or "pipe". Empty means auto-detect.
func ParseDelimiter(s string) (rune, error) {
	r, err := ParseSeparator(s)
	if err != nil {
		return 0, err
	}
	switch r {
	case '"', '\r', '\n':
		return 0, fmt.Errorf("%q cannot be used as a delimiter", r)
	}
	return r, nil
}

// ParseSeparator accepts a single character or one of the separator names.
// Empty and "none" yield 0.
func ParseSeparator(s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	if s == `\t` {
		return '\t', nil
	}
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "none" {
		return 0, nil
	}
	if r, ok := separatorNames[key]; ok {
		return r, nil
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}
	return 0, fmt.Errorf("expected a single character or one of %s, got %q", strings.Join(separatorKeys(), ", "), s)
}

func separatorKeys() []string {
	keys := make([]string, 0, len(separatorNames))
	for k := range separatorNames {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PipelineConfig converts the configuration into the explicit run config.
func (c *Global) PipelineConfig() (pipeline.Config, error) {
	opt, err := c.parseOptions()
	if err != nil {
		return pipeline.Config{}, err
	}
	return pipeline.Config{
		CandidatePaths: ExpandPaths(c.CandidatePaths),
		OutputDir:      ExpandHome(c.OutputDir),
		Parse:          opt,
		Render: render.Options{
			GridCols:        c.GridCols,
			MaxPairplotCols: c.MaxPairplotCols,
			Bins:            c.HistBins,
			CellWidth:       vg.Length(c.CellWidthIn) * vg.Inch,
			CellHeight:      vg.Length(c.CellHeightIn) * vg.Inch,
		},
	}, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	rest := strings.TrimPrefix(p, "~")
	rest = strings.TrimPrefix(rest, string(os.PathSeparator))
	rest = strings.TrimPrefix(rest, "/")
	return filepath.Join(home, rest)
}

// ExpandPaths returns a new slice with ExpandHome applied to each path. The
// input is not modified.
func ExpandPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, ExpandHome(p))
	}
	return out
}

// Keys lists the settable keys in display order.
func Keys() []string {
	return []string{
		"candidate_paths", "output_dir", "max_pairplot_cols", "grid_cols", "hist_bins",
		"cell_width_in", "cell_height_in", "delimiter", "decimal_separator",
		"thousands_separator", "sheet", "log_level", "log_format",
	}
}

// Set assigns one key from its string form. candidate_paths takes a
// comma-separated list.
func (c *Global) Set(key, val string) error {
	switch key {
	case "candidate_paths":
		var paths []string
		for _, p := range strings.Split(val, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		if len(paths) == 0 {
			return fmt.Errorf("invalid candidate_paths: %q", val)
		}
		c.CandidatePaths = paths
	case "output_dir":
		c.OutputDir = val
	case "max_pairplot_cols", "grid_cols", "hist_bins":
		i, err := strconv.Atoi(val)
		if err != nil || i < 1 {
			return fmt.Errorf("invalid int for %s: %v", key, val)
		}
		switch key {
		case "max_pairplot_cols":
			c.MaxPairplotCols = i
		case "grid_cols":
			c.GridCols = i
		default:
			c.HistBins = i
		}
	case "cell_width_in", "cell_height_in":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid float for %s: %v", key, val)
		}
		if key == "cell_width_in" {
			c.CellWidthIn = f
		} else {
			c.CellHeightIn = f
		}
	case "delimiter":
		if _, err := ParseDelimiter(val); err != nil {
			return fmt.Errorf("invalid delimiter: %w", err)
		}
		c.Delimiter = val
	case "decimal_separator", "thousands_separator":
		if _, err := ParseSeparator(val); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		if key == "decimal_separator" {
			c.DecimalSeparator = val
		} else {
			c.ThousandsSeparator = val
		}
	case "sheet":
		c.Sheet = val
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "warning", "error":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
		}
	case "log_format":
		switch strings.ToLower(val) {
		case "text", "json":
			c.LogFormat = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_format: %s (use text or json)", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// Get returns the string form of key, as printed by config show.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "candidate_paths":
		return strings.Join(c.CandidatePaths, ","), nil
	case "output_dir":
		return c.OutputDir, nil
	case "max_pairplot_cols":
		return strconv.Itoa(c.MaxPairplotCols), nil
	case "grid_cols":
		return strconv.Itoa(c.GridCols), nil
	case "hist_bins":
		return strconv.Itoa(c.HistBins), nil
	case "cell_width_in":
		return strconv.FormatFloat(c.CellWidthIn, 'g', -1, 64), nil
	case "cell_height_in":
		return strconv.FormatFloat(c.CellHeightIn, 'g', -1, 64), nil
	case "delimiter":
		return c.Delimiter, nil
	case "decimal_separator":
		return c.DecimalSeparator, nil
	case "thousands_separator":
		return c.ThousandsSeparator, nil
	case "sheet":
		return c.Sheet, nil
	case "log_level":
		return c.LogLevel, nil
	case "log_format":
		return c.LogFormat, nil
	}
	return "", fmt.Errorf("unknown key: %s", key)
}
