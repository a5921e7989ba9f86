package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "thumbnails", cfg.OutputDir)
	assert.Equal(t, 95, cfg.JPEGQuality)
	assert.Equal(t, 320, cfg.DefaultWidth)
	assert.Equal(t, 180, cfg.DefaultHeight)
	assert.False(t, cfg.Preview)
	assert.Equal(t, []string{"http://localhost:*", "http://127.0.0.1:*"}, cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("THUMB_OUTPUT_DIR", "/tmp/thumbs")
	t.Setenv("THUMB_JPEG_QUALITY", "80")
	t.Setenv("THUMB_PREVIEW", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/thumbs", cfg.OutputDir)
	assert.Equal(t, 80, cfg.JPEGQuality)
	assert.True(t, cfg.Preview)
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	t.Setenv("THUMB_ADDR", ":9000")
	t.Cleanup(func() { os.Unsetenv("THUMB_DEFAULT_WIDTH") })

	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("THUMB_ADDR=:7000\nTHUMB_DEFAULT_WIDTH=640\n"), 0o644))

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 640, cfg.DefaultWidth)
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"THUMB_JPEG_QUALITY":  "101",
		"THUMB_DEFAULT_WIDTH": "0",
		"THUMB_PREVIEW":       "maybe",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}
