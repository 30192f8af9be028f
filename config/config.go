package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brettbedarf/roottools/internal/util"
	"golang.org/x/sys/unix"
	"gopkg.in/yaml.v3"
)

// EnvConfigFile names the environment variable consulted for a config file
// when none is passed on the command line.
const EnvConfigFile = "ROOTTOOLS_CONFIG"

// CLI verbosity values, 1 (least) through 5 (most)
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLvl = util.ErrorLevel

	// DefaultLogFile disables file logging
	DefaultLogFile = ""

	// DefaultMaxPathLen matches the kernel's PATH_MAX
	DefaultMaxPathLen = unix.PathMax

	// DefaultCopyBufSize is the read/write chunk used when copying file contents
	DefaultCopyBufSize = 4096

	// DefaultCrawlDepth is the depth limit used by the crawl applet
	DefaultCrawlDepth = 99
)

// Config contains runtime configuration values for the applets.
type Config struct {
	LogLvl      util.LogLevel // Internal log level (Default ErrorLevel)
	LogFile     string        // Optional rotated log file in addition to stderr (Default none)
	MaxPathLen  int           // Longest path the tree operations will build (Default PATH_MAX)
	CopyBufSize int           // Bytes per read/write when copying files (Default 4096)
	CrawlDepth  int           // Depth limit for the crawl applet (Default 99)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
//
// LogLvl is a CLI style verbosity between 1 (error) and 5 (trace); values
// outside that range are clamped.
type ConfigOverride struct {
	LogLvl      *int    `yaml:"verbose,omitempty" json:"verbose,omitempty"`
	LogFile     *string `yaml:"log_file,omitempty" json:"log_file,omitempty"`
	MaxPathLen  *int    `yaml:"max_path_len,omitempty" json:"max_path_len,omitempty"`
	CopyBufSize *int    `yaml:"copy_buf_size,omitempty" json:"copy_buf_size,omitempty"`
	CrawlDepth  *int    `yaml:"crawl_depth,omitempty" json:"crawl_depth,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		LogLvl:      DefaultLogLvl,
		LogFile:     DefaultLogFile,
		MaxPathLen:  DefaultMaxPathLen,
		CopyBufSize: DefaultCopyBufSize,
		CrawlDepth:  DefaultCrawlDepth,
	}
}

// NewConfig creates a default Config and applies override if not nil.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLvl != nil {
		c.LogLvl = VerboseToLogLevel(*override.LogLvl)
	}
	if override.LogFile != nil {
		c.LogFile = *override.LogFile
	}
	if override.MaxPathLen != nil {
		c.MaxPathLen = *override.MaxPathLen
	}
	if override.CopyBufSize != nil {
		c.CopyBufSize = *override.CopyBufSize
	}
	if override.CrawlDepth != nil {
		c.CrawlDepth = *override.CrawlDepth
	}
}

// VerboseToLogLevel maps a 1..5 verbosity onto [util.LogLevel], clamping
// out of range values.
func VerboseToLogLevel(verbose int) util.LogLevel {
	verbose = max(ErrorVerbose, min(verbose, TraceVerbose))
	logLvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	return logLvls[verbose-1]
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}
