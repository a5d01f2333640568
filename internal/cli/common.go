// Package cli carries the plumbing shared by the aslang command line
// tools: version reporting, leveled logging, the .aslang.yaml project
// configuration, and the required_version toolchain gate.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Version information for all CLI tools
const (
	Version   = "0.1.0"
	BuildDate = "2026-08-31"
	CommitSHA = "unknown" // Will be set during build
)

// DefaultConfigFile is the project configuration looked up in the
// working directory when --config is not given.
const DefaultConfigFile = ".aslang.yaml"

// VersionInfo contains version and build information
type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	CommitSHA string `json:"commit_sha"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Arch      string `json:"arch"`
}

// GetVersionInfo returns structured version information
func GetVersionInfo() *VersionInfo {
	return &VersionInfo{
		Version:   Version,
		BuildDate: BuildDate,
		CommitSHA: CommitSHA,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// PrintVersion prints version information in a consistent format
func PrintVersion(toolName string, jsonOutput bool) {
	info := GetVersionInfo()

	if jsonOutput {
		data, err := json.MarshalIndent(map[string]interface{}{
			"tool":         toolName,
			"version_info": info,
		}, "", "  ")
		if err == nil {
			fmt.Println(string(data))
			return
		}
		fmt.Fprintf(os.Stderr, "Error: failed to marshal version info: %v\n", err)
	}

	fmt.Printf("%s v%s\n", toolName, info.Version)
	fmt.Printf("Build Date: %s\n", info.BuildDate)
	if info.CommitSHA != "unknown" && info.CommitSHA != "" {
		fmt.Printf("Commit: %s\n", info.CommitSHA)
	}
	fmt.Printf("Go Version: %s\n", info.GoVersion)
	fmt.Printf("Platform: %s/%s\n", info.Platform, info.Arch)
}

// ExitWithError prints an error message and exits with code 1
func ExitWithError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// Logger provides leveled logging for CLI tools. Info and Debug are
// gated by the verbose and debug flags, Warn and Error always print.
type Logger struct {
	Verbose   bool
	DebugMode bool
}

// NewLogger creates a new logger instance
func NewLogger(verbose, debug bool) *Logger {
	return &Logger{
		Verbose:   verbose,
		DebugMode: debug,
	}
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	if l.Verbose {
		fmt.Printf("[INFO] %s: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.DebugMode {
		fmt.Printf("[DEBUG] %s: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	}
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	fmt.Printf("[WARN] %s: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "[ERROR] %s: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
}

// FormatterConfig holds the formatter options settable per project.
type FormatterConfig struct {
	IndentSize int  `yaml:"indent_size"`
	UseTabs    bool `yaml:"use_tabs"`
}

// Config is the .aslang.yaml project configuration shared by every
// tool. Missing keys keep their defaults; a missing file is not an
// error.
type Config struct {
	// RequiredVersion is a semver constraint the running toolchain
	// must satisfy, e.g. ">=0.1.0 <1.0.0". Empty means no gate.
	RequiredVersion string          `yaml:"required_version"`
	Formatter       FormatterConfig `yaml:"formatter"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		Formatter: FormatterConfig{
			IndentSize: 4,
			UseTabs:    false,
		},
	}
}

// LoadConfig reads a YAML configuration file. A missing file yields
// the defaults; a malformed file is an error.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		configPath = DefaultConfigFile
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}
	if config.Formatter.IndentSize <= 0 {
		config.Formatter.IndentSize = 4
	}

	return config, nil
}

// Save writes the configuration back as YAML
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CheckRequiredVersion verifies the running toolchain version against
// a semver constraint such as ">=0.1.0". An empty constraint passes.
func CheckRequiredVersion(constraint string) error {
	if constraint == "" {
		return nil
	}

	con, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid required_version constraint %q: %w", constraint, err)
	}

	current, err := semver.NewVersion(Version)
	if err != nil {
		return fmt.Errorf("invalid toolchain version %q: %w", Version, err)
	}

	if !con.Check(current) {
		return fmt.Errorf("toolchain version %s does not satisfy required_version %q", Version, constraint)
	}

	return nil
}
