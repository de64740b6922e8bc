package api

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// Transcriber defines a transcription interface for converting audio files to text.
type Transcriber interface {
	Transcript(ctx context.Context, inputFilePath string) (string, error)
}

// MaxUploadBytes is the largest file the hosted transcription endpoints accept.
const MaxUploadBytes = 25 * 1024 * 1024

// UploadFormats are the containers the remote endpoint accepts as-is.
var UploadFormats = []string{"flac", "m4a", "mp3", "mp4", "mpeg", "mpga", "oga", "ogg", "wav", "webm"}

// NeedsConversion reports whether path must be re-encoded before upload.
func NeedsConversion(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return !lo.Contains(UploadFormats, ext)
}
