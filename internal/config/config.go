package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the portal configuration
type Config struct {
	Storage struct {
		DataFile     string `yaml:"data_file" env:"STORAGE_DATA_FILE"`
		FacultyFile  string `yaml:"faculty_file" env:"STORAGE_FACULTY_FILE"`
		CatalogFile  string `yaml:"catalog_file" env:"STORAGE_CATALOG_FILE"`
		CourseFile   string `yaml:"course_file" env:"STORAGE_COURSE_FILE"`
		AuditLogFile string `yaml:"audit_log_file" env:"STORAGE_AUDIT_LOG_FILE"`
	} `yaml:"storage"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
		File   string `yaml:"file" env:"LOG_FILE"`
	} `yaml:"logging"`

	Seed struct {
		RootAdmin      bool `yaml:"root_admin" env:"SEED_ROOT_ADMIN"`
		DefaultCatalog bool `yaml:"default_catalog" env:"SEED_DEFAULT_CATALOG"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// A .env file may carry overrides; ignore absence
	_ = godotenv.Load()

	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Storage defaults
	config.Storage.DataFile = "./storage/db.json"
	config.Storage.FacultyFile = "./storage/faculties.json"
	config.Storage.CatalogFile = "./storage/programmes.json"
	config.Storage.CourseFile = "./storage/courses.json"
	config.Storage.AuditLogFile = "./storage/admin_log.jsonl"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.File = "./storage/portal.log"

	// Seed defaults
	config.Seed.RootAdmin = true
	config.Seed.DefaultCatalog = false
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	// Recursively process the config structure and look for env tags
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Storage.DataFile == "" {
		return fmt.Errorf("storage data file is required")
	}
	if config.Storage.AuditLogFile == "" {
		return fmt.Errorf("storage audit log file is required")
	}

	// Storage files must share a creatable parent directory
	for _, p := range []string{
		config.Storage.DataFile,
		config.Storage.FacultyFile,
		config.Storage.CatalogFile,
		config.Storage.CourseFile,
		config.Storage.AuditLogFile,
	} {
		if p == "" {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("cannot create storage directory for %s: %w", p, err)
		}
	}

	return nil
}
