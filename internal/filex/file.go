// Package filex reads files picked by the user and prepares local directories.
package filex

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// sniffLen is enough header bytes for filetype to classify a file.
const sniffLen = 261

// Selected is a file chosen through the file picker.
type Selected struct {
	Name        string
	ContentType string
	Data        []byte
}

// EnsureSubdDir creates dirName under the working directory and returns its
// absolute path.
func EnsureSubdDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// ReadSelected loads path and classifies it.
func ReadSelected(path string) (Selected, error) {
	f, err := os.Open(path)
	if err != nil {
		return Selected{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return Selected{}, fmt.Errorf("read %s: %w", path, err)
	}

	name := filepath.Base(path)
	return Selected{
		Name:        name,
		ContentType: DetectContentType(name, data),
		Data:        data,
	}, nil
}

// DetectContentType sniffs the magic bytes first and falls back to the
// extension. Unknown content yields an empty string.
func DetectContentType(name string, data []byte) string {
	header := data
	if len(header) > sniffLen {
		header = header[:sniffLen]
	}

	if kind, err := filetype.Match(header); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}

	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if ct == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ct
	}
	return mediaType
}
