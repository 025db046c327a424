package utils

import (
	"strings"
)

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Fallback returns v trimmed, or fallback when v is blank.
func Fallback(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

// FallbackPtr is Fallback for optional columns.
func FallbackPtr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return Fallback(*v, fallback)
}

// NormalizeEmail is the stored form of an email address: trimmed and
// lowercased. Every lookup by email goes through it.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var filenameReplacer = strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")

// SafeFilenamePart makes s usable inside a Content-Disposition filename.
func SafeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	s = filenameReplacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
