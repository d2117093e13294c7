// Package upload stores administrator-supplied images under the static tree.
package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DefaultMaxBytes is the largest image Save accepts.
const DefaultMaxBytes = 5 << 20

// URLPrefix is prepended to stored names; paths are relative to the static dir.
const URLPrefix = "uploads/"

// AllowedExtensions lists the accepted image extensions, lower case.
var AllowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"svg":  true,
	"webp": true,
}

// Upload errors
var (
	ErrNoFile         = errors.New("no file selected")
	ErrDisallowedType = errors.New("file type not allowed")
	ErrTooLarge       = errors.New("file too large")
)

// Store writes uploads into Dir.
type Store struct {
	Dir      string
	MaxBytes int64
	now      func() time.Time
}

// NewStore creates a Store rooted at dir. maxBytes <= 0 means DefaultMaxBytes.
func NewStore(dir string, maxBytes int64) *Store {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Store{Dir: dir, MaxBytes: maxBytes, now: time.Now}
}

// Save validates and writes one uploaded file.
// PRE: filename is the client-supplied name; src yields the file bytes
// POST: on success the file exists at Dir/<name> and "uploads/<name>" is returned;
// on any error nothing is left behind in Dir
func (s *Store) Save(filename string, src io.Reader) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", ErrNoFile
	}
	ext, ok := Extension(filename)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrDisallowedType, filename)
	}

	data, err := io.ReadAll(io.LimitReader(src, s.MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.MaxBytes {
		return "", ErrTooLarge
	}

	name := s.finalName(filename, ext)
	if err := os.MkdirAll(s.Dir, 0o750); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(s.Dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.Dir, name)); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("rename: %w", err)
	}
	return URLPrefix + name, nil
}

// finalName builds <stem>_<unix seconds>.<ext>.
func (s *Store) finalName(filename, ext string) string {
	stem := filename
	if i := strings.LastIndexByte(stem, '.'); i >= 0 {
		stem = stem[:i]
	}
	stem = SecureFilename(stem)
	if stem == "" {
		stem = "upload"
	}
	return stem + "_" + strconv.FormatInt(s.now().Unix(), 10) + "." + ext
}

// Extension returns the lower-cased extension of filename and whether it is allowed.
func Extension(filename string) (string, bool) {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 {
		return "", false
	}
	ext := strings.ToLower(filename[i+1:])
	return ext, AllowedExtensions[ext]
}

// SecureFilename reduces a client-supplied name to a safe ASCII file name:
// compatibility-decomposed, non-ASCII dropped, path separators and whitespace
// runs collapsed to underscores, anything outside [A-Za-z0-9_.-] removed,
// and leading or trailing dots and underscores trimmed. The result may be empty.
func SecureFilename(name string) string {
	name = norm.NFKD.String(name)

	var ascii strings.Builder
	for _, r := range name {
		switch {
		case r == '/' || r == '\\':
			ascii.WriteByte(' ')
		case r <= unicode.MaxASCII:
			ascii.WriteRune(r)
		}
	}

	joined := strings.Join(strings.Fields(ascii.String()), "_")

	var out strings.Builder
	for _, r := range joined {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '.' || r == '-' {
			out.WriteRune(r)
		}
	}
	return strings.Trim(out.String(), "._")
}
