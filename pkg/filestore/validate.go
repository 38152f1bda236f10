package filestore

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
)

var (
	ErrTooLarge        = errors.New("file exceeds size limit")
	ErrNotAllowed      = errors.New("file type not allowed")
	ErrContentMismatch = errors.New("file content does not match extension")
)

// Rule describes what a profile upload slot accepts.
type Rule struct {
	Name       string
	MaxBytes   int64
	Extensions []string
	MIMETypes  []string
}

var (
	CVRule = Rule{
		Name:       "cv",
		MaxBytes:   10 << 20,
		Extensions: []string{".pdf"},
		MIMETypes:  []string{"application/pdf"},
	}
	AvatarRule = Rule{
		Name:       "avatar",
		MaxBytes:   5 << 20,
		Extensions: []string{".jpg", ".jpeg", ".png", ".gif"},
		MIMETypes:  []string{"image/jpeg", "image/png", "image/gif"},
	}
)

// Magic byte signatures, keyed by lowercase extension
var magicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".gif":  {{0x47, 0x49, 0x46, 0x38, 0x37, 0x61}, {0x47, 0x49, 0x46, 0x38, 0x39, 0x61}}, // GIF87a & GIF89a
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                                                   // %PDF
}

// Validated is an upload that passed its rule.
type Validated struct {
	Extension   string
	ContentType string
}

// Validate checks the extension whitelist, the magic bytes and the sniffed MIME type,
// in that order. application/octet-stream is never accepted.
func (r Rule) Validate(filename string, data []byte) (*Validated, error) {
	if int64(len(data)) > r.MaxBytes {
		return nil, fmt.Errorf("%w: %s max is %d MB", ErrTooLarge, r.Name, r.MaxBytes>>20)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return nil, fmt.Errorf("%w: file has no extension", ErrNotAllowed)
	}
	if !contains(r.Extensions, ext) {
		return nil, fmt.Errorf("%w: %s (allowed: %s)", ErrNotAllowed, ext, strings.Join(r.Extensions, ", "))
	}

	if !hasMagic(ext, data) {
		return nil, ErrContentMismatch
	}

	mime := http.DetectContentType(data)
	if mime == "application/octet-stream" || !contains(r.MIMETypes, mime) {
		return nil, fmt.Errorf("%w: %s", ErrNotAllowed, mime)
	}

	return &Validated{Extension: ext, ContentType: mime}, nil
}

func hasMagic(ext string, data []byte) bool {
	if len(data) < 4 {
		return false
	}
	for _, sig := range magicBytes[ext] {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
