package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"storage": map[string]any{
			"sqlitePath":  "",
			"autoMigrate": true,
		},
		"catalog": map[string]any{
			"defaultPopularCount": 10,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "STORAGE_SQLITEPATH", want: "storage.sqlitePath"},
		{envKey: "STORAGE_AUTOMIGRATE", want: "storage.autoMigrate"},
		{envKey: "CATALOG_DEFAULTPOPULARCOUNT", want: "catalog.defaultPopularCount"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}

type testConfig struct {
	Storage StorageConfig `json:"storage" yaml:"storage"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.yaml"), []byte(body), 0o600))

	return dir
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	dir := writeConfig(t, `
storage:
  backend: memory
  sqlitePath: local.db
catalog:
  defaultPopularCount: 10
`)
	t.Chdir(dir)
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("CATALOG_DEFAULTPOPULARCOUNT", "25")

	cfg, err := LoadWithEnv[testConfig]("settings")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "local.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 25, cfg.Catalog.DefaultPopularCount)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[testConfig]("absent")
	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:    "EmptyBackendFallsBackToMemory",
			backend: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, BackendMemory, cfg.Storage.Backend)
				assert.Equal(t, defaultPopularCount, cfg.Catalog.DefaultPopularCount)
				assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
			},
		},
		{
			name:    "SQLiteGetsDefaultPath",
			backend: " SQLite ",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
				assert.Equal(t, defaultSQLitePath, cfg.Storage.SQLitePath)
			},
		},
		{name: "PostgresRequiresSection", backend: "postgres", wantErr: true},
		{name: "UnknownBackend", backend: "mongo", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.Storage.Backend = tt.backend

			err := cfg.applyDefaults()
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestApplyDefaults_MaxPopularCount(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "ZeroMeansNoCap", in: 0, want: 0},
		{name: "NegativeMeansNoCap", in: -5, want: 0},
		{name: "PositiveIsKept", in: 50, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.Catalog.MaxPopularCount = tt.in

			require.NoError(t, cfg.applyDefaults())
			assert.Equal(t, tt.want, cfg.Catalog.MaxPopularCount)
		})
	}
}

func TestLoadWithEnv_MaxPopularCountZeroSurvivesDefaults(t *testing.T) {
	dir := writeConfig(t, `
storage:
  backend: memory
catalog:
  maxPopularCount: 0
`)
	t.Chdir(dir)

	cfg, err := LoadWithEnv[Config]("settings")
	require.NoError(t, err)
	require.NoError(t, cfg.applyDefaults())
	assert.Zero(t, cfg.Catalog.MaxPopularCount)
}
