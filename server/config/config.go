package config

import (
	"fmt"
	"os"

	"github.com/gear6io/mallard/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config represents the server configuration
type Config struct {
	Log  LogConfig  `yaml:"log"`
	Data DataConfig `yaml:"data"`
	HTTP HTTPConfig `yaml:"http"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`      // "json" or "console"
	FilePath   string `yaml:"file_path"`   // Path to log file
	Console    bool   `yaml:"console"`     // Whether to log to console
	MaxSize    int    `yaml:"max_size"`    // Max file size in MB
	MaxBackups int    `yaml:"max_backups"` // Max number of backup files
	MaxAge     int    `yaml:"max_age"`     // Max age in days
	Cleanup    bool   `yaml:"cleanup"`     // Whether to cleanup log file on startup
}

// DataConfig describes the directory being served
type DataConfig struct {
	Path            string   `yaml:"path"`             // Directory to expose (or the sample keyword)
	Items           []string `yaml:"items"`            // Optional explicit entry names; empty means scan
	SchemaEndpoints bool     `yaml:"schema_endpoints"` // Whether *_columnnames resources are served
}

// HTTPConfig represents the HTTP listener configuration
type HTTPConfig struct {
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
}

// LoadDefaultConfig returns a default configuration
func LoadDefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			FilePath:   "logs/mallard-server.log",
			Console:    true,
			MaxSize:    100, // 100MB
			MaxBackups: 3,
			MaxAge:     7,    // 7 days
			Cleanup:    true, // Cleanup log file on startup by default
		},
		Data: DataConfig{
			Path:            "./data",
			SchemaEndpoints: true,
		},
		HTTP: HTTPConfig{
			Address: DEFAULT_SERVER_ADDRESS,
			Port:    HTTP_SERVER_PORT,
		},
	}
}

// LoadConfig loads configuration from a file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.New(ErrConfigFileReadFailed, "failed to read config file", err)
	}

	config := LoadDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.New(ErrConfigFileParseFailed, "failed to parse config file", err)
	}

	// Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, errors.New(ErrConfigValidationFailed, "configuration validation failed", err)
	}

	fmt.Printf("📁 Serving data path: %s\n", config.GetDataPath())
	fmt.Printf("🌐 HTTP listener: %s\n", config.GetHTTPAddr())

	return config, nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.New(ErrConfigFileMarshalFailed, "failed to marshal config", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return errors.New(ErrConfigFileWriteFailed, "failed to write config file", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Data.Validate(); err != nil {
		return errors.New(ErrDataValidationFailed, "data validation failed", err)
	}

	if err := c.HTTP.Validate(); err != nil {
		return errors.New(ErrHTTPValidationFailed, "http validation failed", err)
	}

	return nil
}

// Validate validates the data configuration
func (d *DataConfig) Validate() error {
	if d.Path == "" {
		return errors.New(ErrDataPathRequired, "path is required in data configuration", nil)
	}

	for _, item := range d.Items {
		if item == "" {
			return errors.New(ErrDataItemEmpty, "data items must not contain empty names", nil)
		}
	}

	return nil
}

// Validate validates the HTTP listener configuration
func (h *HTTPConfig) Validate() error {
	if h.Address == "" {
		return errors.New(ErrHTTPAddressRequired, "address is required in http configuration", nil)
	}

	if !IsValidPort(h.Port) {
		return errors.Newf(ErrHTTPPortInvalid, "port %d is outside the valid range %d-%d", h.Port, MIN_PORT, MAX_PORT)
	}

	return nil
}

// GetDataPath returns the configured data directory (or sample keyword)
func (c *Config) GetDataPath() string {
	return c.Data.Path
}

// GetDataItems returns the explicit item allow-list, nil when scanning
func (c *Config) GetDataItems() []string {
	return c.Data.Items
}

// SchemaEndpointsEnabled returns whether schema resources are registered
func (c *Config) SchemaEndpointsEnabled() bool {
	return c.Data.SchemaEndpoints
}

// GetHTTPPort returns the HTTP server port
func (c *Config) GetHTTPPort() int {
	return c.HTTP.Port
}

// GetHTTPAddress returns the HTTP bind address
func (c *Config) GetHTTPAddress() string {
	return c.HTTP.Address
}

// GetHTTPAddr returns the joined address:port the listener binds
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Address, c.HTTP.Port)
}
