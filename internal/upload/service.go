// Package upload stores user-provided logo images on local disk.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/smallbiznis/invoicegen/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	ErrFileTooLarge = errors.New("file_too_large")
	ErrNotAnImage   = errors.New("invalid_file_type")
)

type Service interface {
	SaveLogo(ctx context.Context, upload Upload) (string, error)
}

// Upload carries one incoming file.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Params struct {
	fx.In

	Cfg config.Config
	Log *zap.Logger
}

type service struct {
	dir      string
	maxBytes int64
	log      *zap.Logger
}

func New(p Params) (Service, error) {
	if err := os.MkdirAll(p.Cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &service{
		dir:      p.Cfg.UploadDir,
		maxBytes: p.Cfg.UploadMaxBytes,
		log:      p.Log.Named("upload.service"),
	}, nil
}

// SaveLogo validates the file and writes it under a fresh random name.
// It returns the public URL path of the stored file.
func (s *service) SaveLogo(ctx context.Context, upload Upload) (string, error) {
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return "", ErrNotAnImage
	}
	if upload.Size > s.maxBytes {
		return "", ErrFileTooLarge
	}

	name := uuid.NewString() + logoExtension(upload)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// The declared size is not trusted: copy at most maxBytes+1 and reject
	// when the body overruns the limit.
	written, err := io.Copy(f, io.LimitReader(upload.Body, s.maxBytes+1))
	if err != nil {
		os.Remove(path)
		return "", err
	}
	if written > s.maxBytes {
		os.Remove(path)
		return "", ErrFileTooLarge
	}

	s.log.Info("logo stored",
		zap.String("file", name),
		zap.Int64("bytes", written),
		zap.String("content_type", upload.ContentType),
	)
	return "/uploads/" + name, nil
}

func logoExtension(upload Upload) string {
	if ext := filepath.Ext(upload.Filename); ext != "" {
		return strings.ToLower(ext)
	}
	switch upload.ContentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/svg+xml":
		return ".svg"
	default:
		return ""
	}
}
