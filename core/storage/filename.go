package storage

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Sanitize reduces a client-supplied filename to a safe base name. Directory
// components are discarded, the name is NFC-normalized (macOS clients submit
// decomposed unicode), and control characters are stripped. Empty and
// special names collapse to "unnamed".
func Sanitize(filename string) string {
	filename = norm.NFC.String(filename)

	// Normalize path separators so Windows clients get the same treatment.
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = path.Base(filename)
	filename = stripControl(filename)

	if filename == "" || filename == "." || filename == ".." || filename == "/" {
		return "unnamed"
	}
	return filename
}

// SanitizePath keeps the client-supplied relative directory components of a
// filename while still blocking traversal: absolute prefixes, "." and ".."
// segments, and control characters are removed. Used when a caller opts in
// to preserving paths for directory uploads.
func SanitizePath(filename string) string {
	filename = norm.NFC.String(filename)
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = stripControl(filename)

	segments := strings.Split(filename, "/")
	kept := segments[:0]
	for _, seg := range segments {
		switch seg {
		case "", ".", "..":
			continue
		}
		kept = append(kept, seg)
	}
	if len(kept) == 0 {
		return "unnamed"
	}
	return path.Join(kept...)
}

// Extension returns the sanitized filename's extension including the dot,
// or an empty string when there is none.
func Extension(filename string) string {
	return filepath.Ext(Sanitize(filename))
}

// RandomName generates a collision-resistant filename, keeping the original
// name's extension so downstream content-type detection keeps working.
func RandomName(original string) string {
	return uuid.New().String() + Extension(original)
}

// stripControl drops control characters, including NUL, which have no place
// in a filename and break several filesystems.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
