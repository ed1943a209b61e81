package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("STORAGE", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadFileThenEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
addr: ":9000"
storage: file
data_file: /var/lib/users.json
read_timeout: 5s
db:
  host: db.local
`), 0o644))

	t.Setenv("CONFIG_FILE", p)
	t.Setenv("ADDR", ":9090")
	t.Setenv("STORAGE", "")
	t.Setenv("WRITE_TIMEOUT_SEC", "30")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, StorageFile, cfg.Storage)
	assert.Equal(t, "/var/lib/users.json", cfg.DataFile)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
	assert.Equal(t, "db.local", cfg.DB.Host)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadRejectsBadSeconds(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("IDLE_TIMEOUT_SEC", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "IDLE_TIMEOUT_SEC")
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Storage = "redis"
	assert.ErrorContains(t, cfg.Validate(), `unknown storage "redis"`)

	cfg = Default()
	cfg.Storage = StorageMySQL
	cfg.DB = DB{Host: "localhost", Port: "3306", User: "app"}
	assert.EqualError(t, cfg.Validate(), "storage mysql: env DB_NAME, DB_PASSWORD is not set")

	cfg.DB.Password = "secret"
	cfg.DB.Name = "users"
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".env.dev")
	require.NoError(t, os.WriteFile(p, []byte(`
# comment
export USERCRUD_TEST_A=one
USERCRUD_TEST_B="two"
USERCRUD_TEST_C=three
=broken
`), 0o644))

	t.Setenv("USERCRUD_TEST_C", "kept")
	t.Cleanup(func() {
		os.Unsetenv("USERCRUD_TEST_A")
		os.Unsetenv("USERCRUD_TEST_B")
	})

	loadEnvFile(p)

	assert.Equal(t, "one", os.Getenv("USERCRUD_TEST_A"))
	assert.Equal(t, "two", os.Getenv("USERCRUD_TEST_B"))
	assert.Equal(t, "kept", os.Getenv("USERCRUD_TEST_C"))
}

func TestDSN(t *testing.T) {
	d := DB{Host: "db", Port: "3306", User: "app", Password: "secret", Name: "users"}
	dsn := d.DSN()
	assert.Contains(t, dsn, "app:secret@tcp(db:3306)/users?")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}
