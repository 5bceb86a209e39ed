// Package fs is the local object-store for hero images. Callers get back a
// stable URL string; nothing else about the blob is persisted.
package fs

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Storage struct {
	rootPath string
	baseUrl  string
}

func New(rootPath, baseUrl string) (*Storage, error) {
	// Use filepath.Clean to prevent path traversal issues like "media/../"
	p := filepath.Clean(rootPath)

	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media root %s: %w", p, err)
	}

	return &Storage{rootPath: p, baseUrl: strings.TrimRight(baseUrl, "/")}, nil
}

// Root returns the directory served under the media URL prefix.
func (s *Storage) Root() string {
	return s.rootPath
}

// Save writes a blob under a generated name and returns its public URL.
// The original filename only contributes its extension, cleaned so uploads
// cannot smuggle path segments.
func (s *Storage) Save(fileData io.Reader, originalFilename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalFilename)))
	filename := uuid.NewString() + ext

	fullPath := filepath.Join(s.rootPath, filename)
	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, fileData); err != nil {
		os.Remove(fullPath) // Best effort, ignore error here.
		return "", fmt.Errorf("failed to copy file data: %w", err)
	}

	return s.baseUrl + "/" + filename, nil
}

// Delete removes a stored blob by its public URL. Unknown URLs are ignored.
func (s *Storage) Delete(url string) error {
	filename := path.Base(url)
	if filename == "." || filename == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.rootPath, filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete media file: %w", err)
	}
	return nil
}
