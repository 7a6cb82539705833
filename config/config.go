package config

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataDir         string `envconfig:"DATA_DIR" default:"."`
	ResultsFile     string `envconfig:"RESULTS_FILE" default:"results.csv" validate:"required"`
	GoalscorersFile string `envconfig:"GOALSCORERS_FILE" default:"goalscorers.csv" validate:"required"`
	ShootoutsFile   string `envconfig:"SHOOTOUTS_FILE" default:"shootouts.csv" validate:"required"`

	KeyScheme string `envconfig:"KEY_SCHEME" default:"date" validate:"oneof=date tournament"`
	YearFrom  int    `envconfig:"YEAR_FROM" default:"1900"`
	YearTo    int    `envconfig:"YEAR_TO" default:"2000" validate:"gtefield=YearFrom"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=trace debug info warn warning error"`
	RejectsPath string `envconfig:"REJECTS_PATH"`

	// ReportDriver enables the SQL report sink when set.
	ReportDriver string `envconfig:"REPORT_DRIVER" validate:"omitempty,oneof=postgres sqlite3"`
	ReportDSN    string `envconfig:"REPORT_DSN"`

	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     string `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"stats"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD" default:"stats123"`
	PostgresDB       string `envconfig:"POSTGRES_DB" default:"football_db"`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
}

// Load reads the .env file if present, populates Config from the environment
// and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

// ResultsPath returns the results file location.
func (c *Config) ResultsPath() string { return filepath.Join(c.DataDir, c.ResultsFile) }

// GoalscorersPath returns the goalscorers file location.
func (c *Config) GoalscorersPath() string { return filepath.Join(c.DataDir, c.GoalscorersFile) }

// ShootoutsPath returns the shootouts file location.
func (c *Config) ShootoutsPath() string { return filepath.Join(c.DataDir, c.ShootoutsFile) }

// SinkDSN returns the DSN for the report sink. For postgres without an explicit
// REPORT_DSN it is assembled from the POSTGRES_* variables.
func (c *Config) SinkDSN() string {
	if c.ReportDSN != "" || c.ReportDriver != "postgres" {
		return c.ReportDSN
	}
	return c.DSN()
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}
