package files

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "audio2text/internal/app/errors"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("audio"), 0o644))
}

func TestResolveAudioPath(t *testing.T) {
	root := t.TempDir()
	audioDir := filepath.Join(root, "audio_files")
	existing := filepath.Join(root, "meeting.mp3")
	touch(t, existing)
	touch(t, filepath.Join(audioDir, "lecture.mp3"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "adir.mp3"), 0o755))

	tests := []struct {
		name     string
		input    string
		audioDir string
		want     string
	}{
		{
			name:     "existing path is returned unchanged",
			input:    existing,
			audioDir: audioDir,
			want:     existing,
		},
		{
			name:     "unclean existing path is not rewritten",
			input:    root + "/./meeting.mp3",
			audioDir: audioDir,
			want:     root + "/./meeting.mp3",
		},
		{
			name:     "bare name falls back to audio dir",
			input:    "lecture.mp3",
			audioDir: audioDir,
			want:     filepath.Join(audioDir, "lecture.mp3"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveAudioPath(tt.input, tt.audioDir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveAudioPathNotFound(t *testing.T) {
	audioDir := t.TempDir()

	_, err := ResolveAudioPath("missing.wma", audioDir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrFileNotFound))

	var notFound *PathNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "missing.wma", notFound.Input)
	assert.Equal(t, filepath.Join(audioDir, "missing.wma"), notFound.Joined)
	assert.Contains(t, err.Error(), "missing.wma")
	assert.Contains(t, err.Error(), filepath.Join(audioDir, "missing.wma"))
}

func TestResolveAudioPathRejectsDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "takes.mp3"), 0o755))

	_, err := ResolveAudioPath(filepath.Join(root, "takes.mp3"), "")
	assert.True(t, errors.Is(err, apperrors.ErrFileNotFound))
}

func TestResolveAudioPathRelativeDirIsMadeAbsoluteInError(t *testing.T) {
	_, err := ResolveAudioPath("nope.mp3", "audio_files_that_do_not_exist")
	var notFound *PathNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.True(t, filepath.IsAbs(notFound.Joined))
}

func TestResolveAudioPathEmptyInput(t *testing.T) {
	_, err := ResolveAudioPath("", "audio_files")
	assert.Error(t, err)
}

func TestReplaceExt(t *testing.T) {
	cases := map[string]string{
		"/a/b/lecture.wma":   "/a/b/lecture.mp3",
		"lecture.test.DSS":   "lecture.test.mp3",
		"noext":              "noext.mp3",
		"/path with space/x": "/path with space/x.mp3",
	}
	for in, want := range cases {
		assert.Equal(t, want, ReplaceExt(in, "mp3"), in)
	}
}

func TestHasExtension(t *testing.T) {
	exts := []string{"wma", "dss"}
	assert.True(t, HasExtension("a.wma", exts))
	assert.True(t, HasExtension("A.WMA", exts))
	assert.True(t, HasExtension("dictation.DsS", exts))
	assert.False(t, HasExtension("a.mp3", exts))
	assert.False(t, HasExtension("wma", exts))
	assert.False(t, HasExtension("a.", exts))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "one", "two")
	require.NoError(t, EnsureDir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	require.NoError(t, EnsureDir(dir), "existing directory is fine")
	require.NoError(t, EnsureDir(""))

	file := filepath.Join(t.TempDir(), "file")
	touch(t, file)
	err = EnsureDir(filepath.Join(file, "sub"))
	assert.True(t, errors.Is(err, apperrors.ErrFileWriteFailed))
}

func TestCalculateFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mp3")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	sum, err := CalculateFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", sum)

	_, err = CalculateFileHash(path + ".missing")
	assert.Error(t, err)
}
