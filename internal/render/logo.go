package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/smallbiznis/invoicegen/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// LogoFetcher loads a caller-supplied logo by URL or upload path. Failures
// are reported to the caller, which treats them as non-fatal: a document is
// always rendered, with or without its logo.
type LogoFetcher struct {
	client    *http.Client
	uploadDir string
	log       *zap.Logger
}

type LogoParams struct {
	fx.In

	Cfg config.Config
	Log *zap.Logger
}

func NewLogoFetcher(p LogoParams) *LogoFetcher {
	return &LogoFetcher{
		client:    &http.Client{Timeout: p.Cfg.LogoFetchTimeout},
		uploadDir: p.Cfg.UploadDir,
		log:       p.Log.Named("render.logo"),
	}
}

var errUnsupportedLogoFormat = errors.New("unsupported logo format")

// Fetch returns the logo bytes and image type. Remote URLs are fetched with
// the configured timeout and retried once; anything else is resolved against
// the upload directory.
func (f *LogoFetcher) Fetch(ctx context.Context, url string) ([]byte, extension.Type, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		data, err = f.fetchRemote(ctx, url)
		if err != nil {
			data, err = f.fetchRemote(ctx, url)
		}
	} else {
		data, err = f.readUpload(url)
	}
	if err != nil {
		return nil, "", err
	}

	switch http.DetectContentType(data) {
	case "image/png":
		return data, extension.Png, nil
	case "image/jpeg":
		return data, extension.Jpg, nil
	default:
		return nil, "", errUnsupportedLogoFormat
	}
}

func (f *LogoFetcher) fetchRemote(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("logo fetch returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (f *LogoFetcher) readUpload(url string) ([]byte, error) {
	name := strings.TrimPrefix(url, "/uploads/")
	clean := filepath.Clean(name)
	if clean == "." || clean == ".." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return nil, fmt.Errorf("invalid logo path %q", url)
	}
	return os.ReadFile(filepath.Join(f.uploadDir, clean))
}
