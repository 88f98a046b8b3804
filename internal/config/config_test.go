package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "UPLOAD_DIR", "UPLOAD_TOKEN", "PUBLIC_BASE", "MAX_AGE_HOURS"} {
		// t.Setenv registers the restore; unset leaves the var absent for
		// the duration of the test.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "./uploads", cfg.UploadDir)
	assert.Empty(t, cfg.UploadToken)
	assert.Empty(t, cfg.PublicBase)
	assert.Equal(t, 24, cfg.MaxAgeHours)
	assert.Equal(t, 24*time.Hour, cfg.MaxAge())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("UPLOAD_DIR", "/srv/uploads")
	t.Setenv("UPLOAD_TOKEN", "secret")
	t.Setenv("PUBLIC_BASE", "https://cdn.example.net")
	t.Setenv("MAX_AGE_HOURS", "72")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "/srv/uploads", cfg.UploadDir)
	assert.Equal(t, "secret", cfg.UploadToken)
	assert.Equal(t, "https://cdn.example.net", cfg.PublicBase)
	assert.Equal(t, 72, cfg.MaxAgeHours)
	assert.Equal(t, 72*time.Hour, cfg.MaxAge())
}
