package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/paleoreel/schema"
)

// Default values for configuration.
const (
	DefaultMaxWidth    = 3.0
	DefaultWindow      = 5
	DefaultPrecision   = 2
	MaxPrecision       = 4
	DefaultCorrWindow  = 50
	DefaultStep        = 1
	DefaultTrail       = 200
	DefaultFrameWidth  = 1280
	DefaultFrameHeight = 720
	DefaultDuration    = "1m"
	DefaultOutDir      = "frames"
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a run.
// This struct remains the "final, validated" config.
type Config struct {
	DataPath      string // Absolute path of the CSV time series
	TimeColumn    string
	IntervalsPath string // Empty when no interval file is used
	MaxWidth      float64
	Window        int
	Series        []string // Series to show (empty = all)

	// Frame range [From, To); To <= 0 means through the last row.
	From int
	To   int

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseEmojis  bool
	UseColors  bool
	Verbose    bool

	Frame     int
	At        float64
	HasAt     bool // At was given and takes precedence over Frame
	AllFrames bool

	CorrWindow int
	Step       int

	OutDir        string // Empty unless --out-dir is set; see FramesDir
	Trail         int
	FrameWidth    int
	FrameHeight   int
	Duration      time.Duration
	ReadoutFrames bool // render text readout panels instead of line charts

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Data           string  `mapstructure:"data"`
	TimeColumn     string  `mapstructure:"time-column"`
	Intervals      string  `mapstructure:"intervals"`
	MaxWidth       float64 `mapstructure:"max-width"`
	Window         int     `mapstructure:"window"`
	Series         string  `mapstructure:"series"`
	From           int     `mapstructure:"from"`
	To             int     `mapstructure:"to"`
	Output         string  `mapstructure:"output"`
	OutputFile     string  `mapstructure:"output-file"`
	Precision      int     `mapstructure:"precision"`
	Width          int     `mapstructure:"width"`
	Emoji          string  `mapstructure:"emoji"`
	Color          string  `mapstructure:"color"`
	Verbose        bool    `mapstructure:"verbose"`
	CacheBackend   string  `mapstructure:"cache-backend"`
	CacheDBConnect string  `mapstructure:"cache-db-connect"`
	OutDir         string  `mapstructure:"out-dir"`
	FrameWidth     int     `mapstructure:"frame-width"`
	FrameHeight    int     `mapstructure:"frame-height"`

	// --- Fields from readoutCmd.Flags() ---
	Frame     int    `mapstructure:"frame"`
	At        string `mapstructure:"at"`
	AllFrames bool   `mapstructure:"all-frames"`

	// --- Fields from corrCmd.Flags() ---
	CorrWindow int `mapstructure:"corr-window"`
	Step       int `mapstructure:"step"`

	// --- Fields from renderCmd.Flags() ---
	Trail    int    `mapstructure:"trail"`
	Duration string `mapstructure:"duration"`
	Readout  bool   `mapstructure:"readout"`
}

// FramesDir is where render writes its PNG frames.
func (c *Config) FramesDir() string {
	if c.OutDir == "" {
		return DefaultOutDir
	}
	return c.OutDir
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Series != nil {
		clone.Series = make([]string, len(c.Series))
		copy(clone.Series, c.Series)
	}
	return &clone
}

// FrameRange resolves [From, To) against a table with n rows.
func (c *Config) FrameRange(n int) (int, int, error) {
	to := c.To
	if to <= 0 || to > n {
		to = n
	}
	if c.From < 0 || c.From >= to {
		return 0, 0, schema.OutOfRange(fmt.Sprintf("frame range [%d, %d) is empty for %d rows", c.From, to, n))
	}
	return c.From, to, nil
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processDataInputs(cfg, input); err != nil {
		return err
	}
	if err := processFrameInputs(cfg, input); err != nil {
		return err
	}
	if err := processRenderInputs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ValidateCacheBackend normalizes and validates the cache backend settings.
func ValidateCacheBackend(backendStr, connStr string) (schema.DatabaseBackend, error) {
	backend := schema.DatabaseBackend(strings.ToLower(backendStr))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", backendStr)
	}
	if err := ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", err
	}
	return backend, nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Verbose = input.Verbose

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 2. Backend Validation ---
	backend, err := ValidateCacheBackend(input.CacheBackend, input.CacheDBConnect)
	if err != nil {
		return err
	}
	cfg.CacheBackend = backend
	cfg.CacheDBConnect = input.CacheDBConnect

	return nil
}

// processDataInputs resolves input files and the engine parameters.
func processDataInputs(cfg *Config, input *ConfigRawInput) error {
	if input.Data == "" {
		return fmt.Errorf("a time series file is required (--data)")
	}
	absPath, err := filepath.Abs(input.Data)
	if err != nil {
		return fmt.Errorf("failed to resolve data path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("data file not accessible: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("data path %s is a directory", absPath)
	}
	cfg.DataPath = absPath

	cfg.TimeColumn = strings.TrimSpace(input.TimeColumn)
	if cfg.TimeColumn == "" {
		cfg.TimeColumn = schema.DefaultTimeColumn
	}

	if input.Intervals != "" {
		intervalsPath, err := filepath.Abs(input.Intervals)
		if err != nil {
			return fmt.Errorf("failed to resolve intervals path: %w", err)
		}
		if _, err := os.Stat(intervalsPath); err != nil {
			return fmt.Errorf("intervals file not accessible: %w", err)
		}
		cfg.IntervalsPath = intervalsPath
	} else {
		cfg.IntervalsPath = ""
	}

	if !(input.MaxWidth > 0) {
		return fmt.Errorf("max-width must be greater than 0 (received %v)", input.MaxWidth)
	}
	cfg.MaxWidth = input.MaxWidth

	if input.Window < 1 {
		return fmt.Errorf("window must be at least 1 (received %d)", input.Window)
	}
	cfg.Window = input.Window

	cfg.Series = ParseSeriesList(input.Series)
	return nil
}

// processFrameInputs validates the frame selection and correlation options.
func processFrameInputs(cfg *Config, input *ConfigRawInput) error {
	if input.From < 0 {
		return fmt.Errorf("from must not be negative (received %d)", input.From)
	}
	if input.To > 0 && input.To <= input.From {
		return fmt.Errorf("to must be greater than from (received from=%d to=%d)", input.From, input.To)
	}
	cfg.From = input.From
	cfg.To = input.To

	if input.Frame < 0 {
		return fmt.Errorf("frame must not be negative (received %d)", input.Frame)
	}
	cfg.Frame = input.Frame
	cfg.AllFrames = input.AllFrames

	cfg.HasAt = false
	if at := strings.TrimSpace(input.At); at != "" {
		v, err := strconv.ParseFloat(at, 64)
		if err != nil {
			return fmt.Errorf("invalid --at value '%s': %w", input.At, err)
		}
		cfg.At = v
		cfg.HasAt = true
	}

	if input.CorrWindow < 2 {
		return fmt.Errorf("corr-window must be at least 2 (received %d)", input.CorrWindow)
	}
	cfg.CorrWindow = input.CorrWindow

	if input.Step < 1 {
		return fmt.Errorf("step must be at least 1 (received %d)", input.Step)
	}
	cfg.Step = input.Step
	return nil
}

// processRenderInputs validates the PNG frame rendering options.
func processRenderInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutDir = strings.TrimSpace(input.OutDir)
	cfg.ReadoutFrames = input.Readout

	if input.Trail < 1 {
		return fmt.Errorf("trail must be at least 1 (received %d)", input.Trail)
	}
	cfg.Trail = input.Trail

	if input.FrameWidth < 64 || input.FrameHeight < 64 {
		return fmt.Errorf("frame size must be at least 64x64 (received %dx%d)", input.FrameWidth, input.FrameHeight)
	}
	cfg.FrameWidth = input.FrameWidth
	cfg.FrameHeight = input.FrameHeight

	durationStr := input.Duration
	if durationStr == "" {
		durationStr = DefaultDuration
	}
	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return fmt.Errorf("invalid duration '%s': %w", input.Duration, err)
	}
	if d <= 0 {
		return fmt.Errorf("duration must be positive (received %s)", d)
	}
	cfg.Duration = d
	return nil
}

// ProcessProfilingConfig sets up profiling based on the provided prefix.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	profile.Enabled = profilePrefix != ""
	profile.Prefix = profilePrefix
	return nil
}

// ParseSeriesList splits a comma-separated list of series names.
// Blank entries and duplicates are dropped.
func ParseSeriesList(s string) []string {
	var out []string
	seen := make(map[string]struct{})
	for part := range strings.SplitSeq(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
