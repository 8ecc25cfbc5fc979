package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"cellgrep/internal/rule"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	MaxRowsToProcess int               `mapstructure:"max_rows_to_process"` // Per-sheet row scan limit
	FolderPaths      map[string]string `mapstructure:"folder_paths"`        // Platform name -> workbook folder
	SearchRules      []rule.Spec       `mapstructure:"search_rules"`        // Ordered, loosely-typed rule specs
	Output           OutputConfig      `mapstructure:"output"`
}

// OutputConfig holds output settings
type OutputConfig struct {
	Dir        string `mapstructure:"dir"`         // Journals, app log and reports go here
	ReportName string `mapstructure:"report_name"` // Report file name (without extension)
}

// Load reads the configuration from a file or uses defaults
// If configPath is empty, it looks for "config.yaml" in the current directory.
// Viper infers the format from the extension, so the legacy config.json layout
// loads unchanged.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath == "" {
		configPath = "config.yaml"
	}
	v.SetConfigFile(configPath)

	// Read config file (ignore error if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) || strings.Contains(err.Error(), "no such file") ||
			strings.Contains(err.Error(), "cannot find") {
			fmt.Println("==========================================")
			fmt.Println("Config file not found. Using defaults:")
			fmt.Println("  Max rows: 1000")
			fmt.Println("  Output:   ./output")
			fmt.Println("==========================================")
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		fmt.Printf("Loaded config from: %s\n", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.normalizePaths(); err != nil {
		return nil, err
	}

	if err := cfg.EnsureOutputDir(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults configures sensible default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("max_rows_to_process", 1000)
	v.SetDefault("folder_paths", map[string]string{})
	v.SetDefault("output.dir", "./output")
	v.SetDefault("output.report_name", "cellgrep-report")
}

// normalizePaths converts relative paths to absolute paths
func (c *Config) normalizePaths() error {
	absOutput, err := filepath.Abs(c.Output.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve output.dir: %w", err)
	}
	c.Output.Dir = absOutput
	return nil
}

// EnsureOutputDir creates the output directory if it doesn't exist
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// FolderPath resolves the workbook folder for the current platform.
// Keys follow the legacy layout: "windows", "mac", "linux".
func (c *Config) FolderPath() (string, error) {
	return c.folderPathFor(runtime.GOOS)
}

func (c *Config) folderPathFor(goos string) (string, error) {
	key := "linux"
	switch goos {
	case "windows":
		key = "windows"
	case "darwin":
		key = "mac"
	}

	path := c.FolderPaths[key]
	if path == "" {
		return "", fmt.Errorf("no folder path configured for platform %q", key)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve folder path: %w", err)
	}
	return abs, nil
}

// GetReportPath returns the full path for the Excel match report
func (c *Config) GetReportPath() string {
	return filepath.Join(c.Output.Dir, c.Output.ReportName+".xlsx")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.MaxRowsToProcess <= 0 {
		return fmt.Errorf("max_rows_to_process must be positive, got %d", c.MaxRowsToProcess)
	}

	if len(c.SearchRules) == 0 {
		return fmt.Errorf("search_rules must contain at least one rule")
	}

	if c.Output.ReportName == "" {
		return fmt.Errorf("output.report_name cannot be empty")
	}

	return nil
}

// Print displays the current configuration
func (c *Config) Print() {
	fmt.Println("=== Cellgrep Configuration ===")
	fmt.Printf("Max Rows:         %d\n", c.MaxRowsToProcess)
	fmt.Printf("Folder Paths:     %v\n", c.FolderPaths)
	fmt.Printf("Search Rules:     %d configured\n", len(c.SearchRules))
	fmt.Printf("Output Directory: %s\n", c.Output.Dir)
	fmt.Printf("Report File:      %s\n", c.GetReportPath())
	fmt.Println("==============================")
}
