package fileutil

import (
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// unsafeChars matches everything outside the portable filename alphabet.
var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// windowsDeviceNames are reserved on Windows regardless of extension.
var windowsDeviceNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"LPT1": true, "LPT2": true, "LPT3": true,
}

// SanitizeFilename returns a filesystem-safe version of a user-supplied name.
//
// The name is NFKD-normalized, non-ASCII runes are dropped, path separators and
// whitespace become underscores, and anything outside [A-Za-z0-9_.-] is removed.
// Stem and extension are cleaned separately. An empty string is returned when
// nothing of the stem survives, e.g. for names written entirely in Cyrillic:
//
//   - "My Report.html"        -> "My_Report.html"
//   - "../../etc/passwd.html" -> "etc_passwd.html"
//   - "отчёт.html"            -> ""
func SanitizeFilename(name string) string {
	ext := filepath.Ext(name)
	stem := sanitizePart(strings.TrimSuffix(name, ext))
	if stem == "" {
		return ""
	}

	result := stem
	if cleanExt := sanitizePart(ext); cleanExt != "" {
		result += "." + cleanExt
	}

	if runtime.GOOS == "windows" && windowsDeviceNames[strings.ToUpper(stem)] {
		result = "_" + result
	}
	return result
}

// sanitizePart applies the character policy to one component of a filename.
func sanitizePart(s string) string {
	s = norm.NFKD.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}

	s = strings.NewReplacer("/", " ", "\\", " ").Replace(b.String())
	s = strings.Join(strings.Fields(s), "_")
	s = unsafeChars.ReplaceAllString(s, "")
	return strings.Trim(s, "._")
}

// HasAllowedExtension reports whether name ends in one of the allowed
// extensions (given without the dot). The check is suffix-only and case-insensitive.
func HasAllowedExtension(name string, allowed ...string) bool {
	idx := strings.LastIndex(name, ".")
	if idx == -1 {
		return false
	}
	ext := strings.ToLower(name[idx+1:])
	for _, a := range allowed {
		if ext == strings.ToLower(a) {
			return true
		}
	}
	return false
}

// PDFName replaces the extension of name with ".pdf".
func PDFName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".pdf"
}

// FallbackName builds the generated name used when sanitization empties a filename.
func FallbackName(token string) string {
	return "file_" + token + ".html"
}

// IsPlainName reports whether name is usable as a single path element:
// non-empty, no separators, no NUL bytes, and not "." or "..".
func IsPlainName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}
