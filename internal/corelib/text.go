package corelib

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// NFC normalises s to Unicode Normalization Form C. Mangle operates on
// NFC(s) and relies on NFC idempotence, which norm.NFC already
// guarantees (normalizing a normalized string is a no-op).
func NFC(s string) string {
	return norm.NFC.String(s)
}

// IsUnicodeScalar reports whether cp is a valid Unicode scalar value: in
// range and not a surrogate code point. Used by EncodeConst's rejection
// of lone surrogates (e.g. `'\u{D800}'`); layout's ValidValue applies
// the same test to char values with its own check.
func IsUnicodeScalar(cp uint32) bool {
	if cp > 0x10FFFF {
		return false
	}
	if cp >= 0xD800 && cp <= 0xDFFF {
		return false
	}
	return true
}

// RuneCount returns the number of Unicode scalar values (runes) in s,
// assuming s is valid UTF-8.
func RuneCount(s string) int {
	return utf8.RuneCountInString(s)
}

// ValidUTF8 reports whether b is well-formed UTF-8, the same check
// string::from_bytes applies (through utf8.Valid directly) before
// narrowing bytes to a string.
func ValidUTF8(b []byte) bool {
	return utf8.Valid(b)
}
