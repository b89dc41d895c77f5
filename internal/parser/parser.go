package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dgallion1/charterreview/internal/doctree"
)

// Parser converts raw document bytes into a Document.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.Document, error)
}

// SupportedExtensions lists file extensions this tool can read.
var SupportedExtensions = map[string]bool{
	".docx": true,
}

// lockPrefix marks the owner files Word leaves next to open documents.
const lockPrefix = "~$"

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// IsLockFile reports whether a file name is a Word lock file.
func IsLockFile(filename string) bool {
	return strings.HasPrefix(filepath.Base(filename), lockPrefix)
}

// Discover lists the readable documents in dir, sorted by file name.
// Lock files and unsupported extensions are skipped.
func Discover(dir string) ([]string, error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*"))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var out []string
	for _, path := range entries {
		name := filepath.Base(path)
		if IsLockFile(name) || !IsSupportedExtension(name) {
			continue
		}
		out = append(out, path)
	}
	sort.Strings(out)
	return out, nil
}
