package utils

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// Characters invalid in filenames on most filesystems, minus whitespace
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)
	// Whitespace runs to collapse
	multipleSpaces = regexp.MustCompile(`\s+`)
)

// MaxFilenameLength leaves room for the timestamp prefix within the
// usual 255 byte limit.
const MaxFilenameLength = 200

// KnownBookExtensions contains file extensions commonly used for e-books.
// Multi-part extensions come first so they win over their suffixes.
var KnownBookExtensions = []string{
	".fb2.zip",
	".tar.gz",
	".fb2",
	".epub",
	".pdf",
	".txt",
	".docx",
	".doc",
	".mobi",
	".azw3",
	".azw",
	".djvu",
}

// SplitExtension splits name into base and extension, recognising the
// multi-part e-book extensions.
func SplitExtension(name string) (string, string) {
	lower := strings.ToLower(name)
	for _, ext := range KnownBookExtensions {
		if strings.HasSuffix(lower, ext) && len(name) > len(ext) {
			return name[:len(name)-len(ext)], name[len(name)-len(ext):]
		}
	}
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext), ext
}

// SanitizeFilename turns a client supplied file name into a safe single
// path component of valid UTF-8. Directory parts are dropped, invalid
// characters removed, whitespace collapsed, and long names truncated
// keeping the extension.
func SanitizeFilename(filename string) string {
	// Stored names must round-trip through JSON and TEXT columns
	filename = strings.ToValidUTF8(filename, "_")

	// Clients may send full paths using either separator
	if i := strings.LastIndexAny(filename, `/\`); i >= 0 {
		filename = filename[i+1:]
	}

	filename = invalidFilenameChars.ReplaceAllString(filename, "")
	filename = multipleSpaces.ReplaceAllString(filename, " ")
	filename = strings.TrimSpace(filename)
	filename = strings.TrimLeft(filename, ".")

	if len(filename) > MaxFilenameLength {
		base, ext := SplitExtension(filename)
		if len(ext) >= MaxFilenameLength {
			ext = ""
		}
		filename = strings.TrimSpace(truncateUTF8(base, MaxFilenameLength-len(ext))) + ext
	}

	if filename == "" {
		filename = "upload"
	}

	return filename
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
