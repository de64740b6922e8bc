package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tcolgate/mp3"

	apperrors "audio2text/internal/app/errors"
	"audio2text/internal/app/model"
)

// FakeEngine stands in for ffmpeg. Conversions write a few silent MP3 frames
// to the destination; sources listed in Fail produce an engine error.
type FakeEngine struct {
	// Fail maps a source base name to the stderr text to report.
	Fail map[string]string
	// Frames is the number of silent frames written per output, default 40.
	Frames int
	// ChunkCount is how many chunks Split produces, default 2.
	ChunkCount int
	// Seconds is returned by Duration.
	Seconds float64

	mu       sync.Mutex
	Jobs     []model.ConversionJob
	Extracts []string
	Splits   []string
}

func (f *FakeEngine) silence() []byte {
	n := f.Frames
	if n == 0 {
		n = 40
	}
	return bytes.Repeat(mp3.SilentBytes, n)
}

func (f *FakeEngine) failure(src string) error {
	if msg, ok := f.Fail[filepath.Base(src)]; ok {
		return apperrors.Kind(apperrors.ErrEngine, "ffmpeg failed: %s", msg)
	}
	return nil
}

func (f *FakeEngine) ConvertToMp3(ctx context.Context, job model.ConversionJob) error {
	f.mu.Lock()
	f.Jobs = append(f.Jobs, job)
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := f.failure(job.Source); err != nil {
		return err
	}
	return os.WriteFile(job.Destination, f.silence(), 0o644)
}

func (f *FakeEngine) ExtractAudio(ctx context.Context, videoPath, mp3Path string) error {
	f.mu.Lock()
	f.Extracts = append(f.Extracts, videoPath)
	f.mu.Unlock()
	if err := f.failure(videoPath); err != nil {
		return err
	}
	return os.WriteFile(mp3Path, f.silence(), 0o644)
}

func (f *FakeEngine) Split(ctx context.Context, mp3Path string, segment time.Duration, dir string) ([]string, error) {
	f.mu.Lock()
	f.Splits = append(f.Splits, mp3Path)
	f.mu.Unlock()
	n := f.ChunkCount
	if n == 0 {
		n = 2
	}
	base := filepath.Join(dir, strings.TrimSuffix(filepath.Base(mp3Path), filepath.Ext(mp3Path)))
	chunks := make([]string, 0, n)
	for i := 0; i < n; i++ {
		chunk := fmt.Sprintf("%s_chunk%03d.mp3", base, i)
		if err := os.WriteFile(chunk, f.silence(), 0o644); err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}

func (f *FakeEngine) Duration(ctx context.Context, path string) (float64, error) {
	return f.Seconds, nil
}

// Bitrates returns the bitrate of every conversion requested so far.
func (f *FakeEngine) Bitrates() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.Jobs))
	for _, j := range f.Jobs {
		out = append(out, j.Bitrate)
	}
	return out
}
