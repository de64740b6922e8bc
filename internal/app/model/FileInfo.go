package model

import (
	"path/filepath"
	"strings"
	"time"
)

// FileInfo is a discovered audio or video file.
type FileInfo struct {
	FullPath string
	ModTime  time.Time
	Name     string
	Size     int64
}

// Ext returns the lower-cased extension without the leading dot.
func (f FileInfo) Ext() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(f.Name)), ".")
}
