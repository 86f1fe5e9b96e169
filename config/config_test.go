package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(configFile string) (*Config, error) {
	l, err := NewLoader(configFile)
	if err != nil {
		return nil, err
	}
	return l.Config()
}

func TestDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "")

	cfg, err := load("")
	require.NoError(t, err)

	assert.Equal(t, "public", cfg.DBSchema)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "com.example.app", cfg.BasePackage)
	assert.Equal(t, "src/main/resources", cfg.ResourcesRoot)
	assert.Equal(t, "src/main/java/com/example/app", cfg.SourceRoot)
	assert.Equal(t, []string{"http://localhost:8080"}, cfg.API.Servers)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestConfigFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crudforge.yaml"), []byte(`
base_package: com.acme.jobs
source_root: backend/src/main/java/com/acme/jobs
api:
  title: Jobs API
  servers:
    - https://api.acme.test
log:
  level: debug
`), 0o644))

	t.Setenv("DATABASE_URL", "postgres://plain@localhost/jobs")
	t.Setenv("CRUDFORGE_API_PREFIX", "/api/v2")
	t.Setenv("CRUDFORGE_API_CONTACT_EMAIL", "support@acme.test")

	l, err := NewLoader("")
	require.NoError(t, err)
	assert.Equal(t, "crudforge.yaml", filepath.Base(l.ConfigFile()))

	cfg, err := l.Config()
	require.NoError(t, err)

	assert.Equal(t, "com.acme.jobs", cfg.BasePackage)
	assert.Equal(t, "backend/src/main/java/com/acme/jobs", cfg.SourceRoot)
	assert.Equal(t, "Jobs API", cfg.API.Title)
	assert.Equal(t, []string{"https://api.acme.test"}, cfg.API.Servers)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "postgres://plain@localhost/jobs", cfg.DatabaseURL)
	assert.Equal(t, "/api/v2", cfg.APIPrefix)
	assert.Equal(t, "support@acme.test", cfg.API.ContactEmail)

	opts := cfg.Options()
	assert.Equal(t, "com.acme.jobs", opts.BasePackage)
	assert.Equal(t, "/api/v2", opts.APIPrefix)
	assert.Equal(t, "Jobs API", opts.API.Title)
}

func TestPrefixedDatabaseURLWins(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://plain@localhost/jobs")
	t.Setenv("CRUDFORGE_DATABASE_URL", "postgres://prefixed@localhost/jobs")

	cfg, err := load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres://prefixed@localhost/jobs", cfg.DatabaseURL)
}

func TestDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DATABASE_URL", "")
	os.Unsetenv("DATABASE_URL")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DATABASE_URL=postgres://dotenv@localhost/jobs\n"), 0o644))

	cfg, err := load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres://dotenv@localhost/jobs", cfg.DatabaseURL)
}

func TestMissingExplicitConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := load("nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.yaml")
}

func TestWatchWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	l, err := NewLoader("")
	require.NoError(t, err)
	assert.False(t, l.Watch(func(*Config, error) {}))
}

func TestSourceRootFollowsBasePackage(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CRUDFORGE_BASE_PACKAGE", "com.acme.jobs")

	cfg, err := load("")
	require.NoError(t, err)
	assert.Equal(t, "src/main/java/com/acme/jobs", cfg.SourceRoot)
	assert.Equal(t, "com.acme.jobs", cfg.Options().BasePackage)
}

func TestExplicitSourceRootWins(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CRUDFORGE_BASE_PACKAGE", "com.acme.jobs")
	t.Setenv("CRUDFORGE_SOURCE_ROOT", "backend/src/main/java/com/acme/jobs")

	cfg, err := load("")
	require.NoError(t, err)
	assert.Equal(t, "backend/src/main/java/com/acme/jobs", cfg.SourceRoot)
}

func TestDefaultSourceRoot(t *testing.T) {
	assert.Equal(t, "src/main/java/com/example/app", DefaultSourceRoot(""))
	assert.Equal(t, "src/main/java/io/shop", DefaultSourceRoot("io.shop"))
}
