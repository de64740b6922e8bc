// Package output delivers transcripts to stdout, a local file or an object
// store.
package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	apperrors "audio2text/internal/app/errors"
	"audio2text/internal/app/storage/objectstore"
	"audio2text/internal/app/util/files"
)

// ObjectPutter is the part of objectstore.Store the writer needs.
type ObjectPutter interface {
	Put(ctx context.Context, bucket, key string, body []byte, contentType string) error
}

type Writer struct {
	stdout  io.Writer
	objects ObjectPutter
	logger  *zap.Logger
}

// NewWriter builds a writer. objects may be nil when no object store is
// configured, in which case s3:// destinations are rejected.
func NewWriter(stdout io.Writer, objects ObjectPutter, logger *zap.Logger) *Writer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{stdout: stdout, objects: objects, logger: logger}
}

// Write stores text at dest and returns a description of where it went.
// An empty dest or "-" prints text followed by a newline. Files and objects
// receive text exactly as given.
func (w *Writer) Write(ctx context.Context, dest string, text string) (string, error) {
	if dest == "" || dest == "-" {
		if _, err := fmt.Fprintln(w.stdout, text); err != nil {
			return "", apperrors.KindWrap(apperrors.ErrFileWriteFailed, err, "failed to write to stdout")
		}
		return "stdout", nil
	}

	bucket, key, isObject, err := objectstore.ParseURL(dest)
	if err != nil {
		return "", err
	}
	if isObject {
		if w.objects == nil {
			return "", apperrors.InvalidField("output", "object storage is not configured (set MINIO_ENDPOINT)")
		}
		if err := w.objects.Put(ctx, bucket, key, []byte(text), "text/plain; charset=utf-8"); err != nil {
			return "", err
		}
		w.logger.Info("transcript uploaded", zap.String("bucket", bucket), zap.String("key", key))
		return dest, nil
	}

	if err := files.EnsureDir(filepath.Dir(dest)); err != nil {
		return "", err
	}
	if err := os.WriteFile(dest, []byte(text), 0o644); err != nil {
		return "", apperrors.KindWrap(apperrors.ErrFileWriteFailed, err, "failed to write %s", dest)
	}
	w.logger.Info("transcript written", zap.String("path", dest))
	return dest, nil
}
