package upload

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smallbiznis/invoicegen/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, maxBytes int64) (Service, string) {
	t.Helper()
	dir := t.TempDir()
	svc, err := New(Params{
		Cfg: config.Config{UploadDir: dir, UploadMaxBytes: maxBytes},
		Log: zap.NewNop(),
	})
	require.NoError(t, err)
	return svc, dir
}

func TestSaveLogo(t *testing.T) {
	svc, dir := newTestService(t, 1024)

	url, err := svc.SaveLogo(context.Background(), Upload{
		Filename:    "logo.PNG",
		ContentType: "image/png",
		Size:        4,
		Body:        bytes.NewReader([]byte{0x89, 0x50, 0x4e, 0x47}),
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	stored := filepath.Join(dir, strings.TrimPrefix(url, "/uploads/"))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, data)
}

func TestSaveLogoRandomizesName(t *testing.T) {
	svc, _ := newTestService(t, 1024)

	first, err := svc.SaveLogo(context.Background(), Upload{
		Filename:    "logo.png",
		ContentType: "image/png",
		Size:        1,
		Body:        strings.NewReader("x"),
	})
	require.NoError(t, err)
	second, err := svc.SaveLogo(context.Background(), Upload{
		Filename:    "logo.png",
		ContentType: "image/png",
		Size:        1,
		Body:        strings.NewReader("x"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "logo")
}

func TestSaveLogoRejectsNonImage(t *testing.T) {
	svc, _ := newTestService(t, 1024)

	_, err := svc.SaveLogo(context.Background(), Upload{
		Filename:    "notes.txt",
		ContentType: "text/plain",
		Size:        5,
		Body:        strings.NewReader("hello"),
	})
	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestSaveLogoRejectsDeclaredOversize(t *testing.T) {
	svc, _ := newTestService(t, 10)

	_, err := svc.SaveLogo(context.Background(), Upload{
		Filename:    "logo.png",
		ContentType: "image/png",
		Size:        11,
		Body:        strings.NewReader("aaaaaaaaaaa"),
	})
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestSaveLogoRejectsOversizedBody(t *testing.T) {
	svc, dir := newTestService(t, 10)

	// Declared size lies; the body itself overruns the limit.
	_, err := svc.SaveLogo(context.Background(), Upload{
		Filename:    "logo.png",
		ContentType: "image/png",
		Size:        5,
		Body:        strings.NewReader(strings.Repeat("a", 64)),
	})
	assert.ErrorIs(t, err, ErrFileTooLarge)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "rejected upload must not leave a file behind")
}

func TestLogoExtensionFromContentType(t *testing.T) {
	svc, _ := newTestService(t, 1024)

	url, err := svc.SaveLogo(context.Background(), Upload{
		Filename:    "logo",
		ContentType: "image/jpeg",
		Size:        1,
		Body:        strings.NewReader("x"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".jpg"))
}
