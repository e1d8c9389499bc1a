// Package source loads playbook text files.
//
// Reading a source normalizes its text: a leading byte order mark is
// removed, invalid UTF-8 is replaced, line endings become "\n" and the text
// is put in Unicode NFC so that labels and keywords compare byte-for-byte.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Sentinel errors for source loading.
var (
	ErrUnavailable = errors.New("source unavailable")
	ErrTooLarge    = errors.New("source exceeds maximum size")
)

// MaxSize limits the size of a source file (default 16MB).
var MaxSize int64 = 16 << 20

// Read loads the file at path and returns its normalized text.
// Missing, unreadable or oversized files return an error wrapping
// ErrUnavailable.
func Read(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- source path is user-provided
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrUnavailable, path)
	}
	if info.Size() > MaxSize {
		return "", fmt.Errorf("%w: %w: %d bytes (max %d)", ErrUnavailable, ErrTooLarge, info.Size(), MaxSize)
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxSize+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return Normalize(data)
}

// Normalize decodes raw source bytes into parser-ready text.
func Normalize(data []byte) (string, error) {
	t := transform.Chain(
		unicode.BOMOverride(unicode.UTF8.NewDecoder()),
		norm.NFC,
	)
	text, _, err := transform.Bytes(t, data)
	if err != nil {
		return "", fmt.Errorf("normalizing source text: %w", err)
	}
	return strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(string(text)), nil
}
