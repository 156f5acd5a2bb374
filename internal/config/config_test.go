package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "invoicegen", cfg.AppName)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "postgres", cfg.DBType)
	assert.Equal(t, int64(5*1024*1024), cfg.UploadMaxBytes)
	assert.Equal(t, 5*time.Second, cfg.LogoFetchTimeout)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("DATABASE_TYPE", "sqlite")
	t.Setenv("UPLOAD_MAX_BYTES", "1024")
	t.Setenv("LOGO_FETCH_TIMEOUT", "2s")
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "7")

	cfg := Load()
	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, int64(1024), cfg.UploadMaxBytes)
	assert.Equal(t, 2*time.Second, cfg.LogoFetchTimeout)
	assert.Equal(t, 7, cfg.DBMaxOpenConns)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("UPLOAD_MAX_BYTES", "lots")
	t.Setenv("LOGO_FETCH_TIMEOUT", "soon")

	cfg := Load()
	assert.Equal(t, int64(5*1024*1024), cfg.UploadMaxBytes)
	assert.Equal(t, 5*time.Second, cfg.LogoFetchTimeout)
}

func TestLoadLayoutDefaults(t *testing.T) {
	layout, err := LoadLayout()
	require.NoError(t, err)

	assert.Equal(t, 297.0, layout.PageHeight)
	assert.Equal(t, 8.0, layout.RowHeight)
}
