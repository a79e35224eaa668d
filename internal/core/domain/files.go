package domain

import (
	"errors"
	"time"
)

const (
	FileTypeFile      = "file"
	FileTypeDirectory = "directory"
)

var (
	// ErrAccessDenied rejects any path that escapes the tenant home after
	// canonicalization. Generic on purpose.
	ErrAccessDenied = errors.New("access denied")

	// ErrNotDirectory covers both a missing target and a target that is a
	// regular file; the two are not distinguished so listing errors leak
	// nothing about filesystem structure outside the tenant home.
	ErrNotDirectory = errors.New("not a directory")
)

// FileEntry describes one entry of a tenant directory listing.
type FileEntry struct {
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// Listing is a resolved directory listing. Path is rendered relative to the
// tenant home with a "~" prefix.
type Listing struct {
	Path  string      `json:"path"`
	Files []FileEntry `json:"files"`
}
