package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PINBOARD_CONFIG", "")

	_, err := LoadConfig()
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("PINBOARD_CONFIG", "")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 25, cfg.PageSize)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "token", cfg.CookieName)
	assert.Equal(t, ":8000", cfg.HTTPAddr)
}

func TestLoadConfig_YAMLFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pinboard.yaml")
	body := []byte("jwt_secret: from-file\npage_size: 5\nupload_driver: s3\ns3_bucket: pins\n")
	require.NoError(t, os.WriteFile(path, body, 0o600))

	t.Setenv("PINBOARD_CONFIG", path)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PAGE_SIZE", "7")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, 7, cfg.PageSize)
	assert.Equal(t, "s3", cfg.UploadDriver)
	assert.Equal(t, "pins", cfg.S3Bucket)
}

func TestLoadConfig_BadValue(t *testing.T) {
	t.Setenv("PINBOARD_CONFIG", "")
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("PAGE_SIZE", "many")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := Defaults()
	cfg.DBHost = "db"
	cfg.DBUser = "pin"
	cfg.DBPassword = "pw"
	cfg.DBName = "pinboard"

	assert.Equal(t, "host=db port=5432 user=pin password=pw dbname=pinboard sslmode=disable", cfg.DSN())
}
