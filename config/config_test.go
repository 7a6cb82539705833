package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "date", cfg.KeyScheme)
	assert.Equal(t, 1900, cfg.YearFrom)
	assert.Equal(t, 2000, cfg.YearTo)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.ReportDriver)
	assert.Equal(t, filepath.Join(".", "results.csv"), cfg.ResultsPath())
	assert.Equal(t, filepath.Join(".", "goalscorers.csv"), cfg.GoalscorersPath())
	assert.Equal(t, filepath.Join(".", "shootouts.csv"), cfg.ShootoutsPath())
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATA_DIR", "/data")
	t.Setenv("RESULTS_FILE", "results.xlsx")
	t.Setenv("KEY_SCHEME", "tournament")
	t.Setenv("YEAR_FROM", "1950")
	t.Setenv("YEAR_TO", "1960")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tournament", cfg.KeyScheme)
	assert.Equal(t, 1950, cfg.YearFrom)
	assert.Equal(t, 1960, cfg.YearTo)
	assert.Equal(t, filepath.Join("/data", "results.xlsx"), cfg.ResultsPath())
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown key scheme", "KEY_SCHEME", "season"},
		{"unknown sink driver", "REPORT_DRIVER", "mysql"},
		{"year range inverted", "YEAR_FROM", "2100"},
		{"year not a number", "YEAR_TO", "two thousand"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestSinkDSN(t *testing.T) {
	cfg := &Config{
		ReportDriver:     "postgres",
		PostgresHost:     "db",
		PostgresPort:     "5432",
		PostgresUser:     "u",
		PostgresPassword: "p",
		PostgresDB:       "stats",
		PostgresSSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=stats sslmode=disable", cfg.SinkDSN())

	cfg.ReportDSN = "postgres://elsewhere/db"
	assert.Equal(t, "postgres://elsewhere/db", cfg.SinkDSN())

	sqlite := &Config{ReportDriver: "sqlite3", ReportDSN: "report.db"}
	assert.Equal(t, "report.db", sqlite.SinkDSN())
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) on older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
