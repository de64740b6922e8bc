package files

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"

	apperrors "audio2text/internal/app/errors"
	"audio2text/internal/app/model"
)

// PathNotFoundError reports every location ResolveAudioPath looked at.
type PathNotFoundError struct {
	Input  string
	Joined string
}

func (e *PathNotFoundError) Error() string {
	if e.Joined == "" {
		return fmt.Sprintf("file not found: %s", e.Input)
	}
	return fmt.Sprintf("file not found: %s (checked %q and %q)", e.Input, e.Input, e.Joined)
}

// Is makes the error match apperrors.ErrFileNotFound.
func (e *PathNotFoundError) Is(target error) bool {
	return errors.Is(apperrors.ErrFileNotFound, target)
}

// ResolveAudioPath returns input unchanged when it names an existing file.
// Otherwise it tries input joined onto audioDir and returns that path. When
// neither exists the error names both locations, the joined one made absolute.
func ResolveAudioPath(input string, audioDir string) (string, error) {
	if input == "" {
		return "", apperrors.RequiredField("audio file path")
	}
	if isFile(input) {
		return input, nil
	}
	if audioDir == "" {
		return "", &PathNotFoundError{Input: input}
	}

	joined := filepath.Join(audioDir, input)
	if isFile(joined) {
		return joined, nil
	}
	if abs, err := GetAbsolutePath(joined); err == nil {
		joined = abs
	}
	return "", &PathNotFoundError{Input: input, Joined: joined}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// GetAbsolutePath cleans path and makes it absolute.
func GetAbsolutePath(path string) (string, error) {
	return filepath.Abs(filepath.Clean(path))
}

// EnsureDir creates dir and its parents when missing.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.Wrapf(apperrors.ErrFileWriteFailed, "create directory %s: %v", dir, err)
	}
	return nil
}

// HasExtension reports whether name ends in one of exts (lower case, no dot).
func HasExtension(name string, exts []string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	return ext != "" && lo.Contains(exts, ext)
}

// ReplaceExt swaps the extension of path for ext (given without a dot).
func ReplaceExt(path string, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}

// isIgnoredName matches editor lock files (~$x.wma) and dot files.
func isIgnoredName(name string) bool {
	return strings.HasPrefix(name, "~") || strings.HasPrefix(name, ".")
}

// DiscoverFiles lists the files under root whose extension is in exts. A root
// that is itself a file yields at most that file. Subdirectories are only
// descended into when recursive is set. Results are sorted by path.
func DiscoverFiles(root string, recursive bool, exts []string) ([]model.FileInfo, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &PathNotFoundError{Input: root}
		}
		return nil, err
	}

	if !info.IsDir() {
		if !HasExtension(info.Name(), exts) {
			return []model.FileInfo{}, nil
		}
		return []model.FileInfo{toFileInfo(root, info)}, nil
	}

	fileInfos := make([]model.FileInfo, 0)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if !recursive || isIgnoredName(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if isIgnoredName(d.Name()) || !d.Type().IsRegular() || !HasExtension(d.Name(), exts) {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		fileInfos = append(fileInfos, toFileInfo(path, fi))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	sort.Slice(fileInfos, func(i, j int) bool {
		return fileInfos[i].FullPath < fileInfos[j].FullPath
	})
	return fileInfos, nil
}

func toFileInfo(path string, fi fs.FileInfo) model.FileInfo {
	return model.FileInfo{
		FullPath: path,
		ModTime:  fi.ModTime(),
		Name:     fi.Name(),
		Size:     fi.Size(),
	}
}

// ReadOutputFile reads the specified output file and returns its text content.
func ReadOutputFile(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(content)), nil
}

// CalculateFileHash calculates SHA256 hash of a file
func CalculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
