package output

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "audio2text/internal/app/errors"
)

type recordingPutter struct {
	bucket, key, contentType string
	body                     []byte
	err                      error
}

func (r *recordingPutter) Put(_ context.Context, bucket, key string, body []byte, contentType string) error {
	r.bucket, r.key, r.body, r.contentType = bucket, key, body, contentType
	return r.err
}

func TestWriteStdout(t *testing.T) {
	for _, dest := range []string{"", "-"} {
		var buf bytes.Buffer
		w := NewWriter(&buf, nil, nil)

		where, err := w.Write(context.Background(), dest, "hello world")
		require.NoError(t, err)
		assert.Equal(t, "stdout", where)
		assert.Equal(t, "hello world\n", buf.String())
	}
}

func TestWriteFileCreatesParents(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "transcripts", "2024", "lecture.txt")
	w := NewWriter(&bytes.Buffer{}, nil, nil)

	where, err := w.Write(context.Background(), dest, "hello world")
	require.NoError(t, err)
	assert.Equal(t, dest, where)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data), "files receive the transcript verbatim")
}

func TestWriteFileOverwrites(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(dest, []byte("old transcript that is longer"), 0o644))

	_, err := NewWriter(nil, nil, nil).Write(context.Background(), dest, "new")
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriteFileFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := NewWriter(nil, nil, nil).Write(context.Background(), filepath.Join(blocker, "out.txt"), "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrFileWriteFailed))
}

func TestWriteObject(t *testing.T) {
	putter := &recordingPutter{}
	w := NewWriter(nil, putter, nil)

	where, err := w.Write(context.Background(), "s3://transcripts/lecture.txt", "hello world")
	require.NoError(t, err)
	assert.Equal(t, "s3://transcripts/lecture.txt", where)
	assert.Equal(t, "transcripts", putter.bucket)
	assert.Equal(t, "lecture.txt", putter.key)
	assert.Equal(t, "hello world", string(putter.body))
	assert.Contains(t, putter.contentType, "text/plain")
}

func TestWriteObjectErrors(t *testing.T) {
	_, err := NewWriter(nil, nil, nil).Write(context.Background(), "s3://transcripts/lecture.txt", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidConfig))

	putter := &recordingPutter{err: apperrors.Kind(apperrors.ErrStorage, "boom")}
	_, err = NewWriter(nil, putter, nil).Write(context.Background(), "s3://transcripts/lecture.txt", "x")
	assert.True(t, errors.Is(err, apperrors.ErrStorage))

	_, err = NewWriter(nil, putter, nil).Write(context.Background(), "s3://only-bucket", "x")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidConfig))
}
