package corelib

import "strings"

// ModulePath is an ordered sequence of identifiers naming a module.
type ModulePath []string

// String renders the path using "::" as the original source separator.
func (p ModulePath) String() string {
	return strings.Join(p, "::")
}

// Equal reports whether two module paths name the same module.
func (p ModulePath) Equal(o ModulePath) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Join appends segments, returning a new path (ModulePath is never mutated
// in place, matching the "immutable trees" discipline used throughout).
func (p ModulePath) Join(segments ...string) ModulePath {
	out := make(ModulePath, 0, len(p)+len(segments))
	out = append(out, p...)
	out = append(out, segments...)
	return out
}

// HasPrefix reports whether p starts with prefix, component-wise. Used by
// visibility checks ("internal" visible to declaring and descendant
// modules).
func (p ModulePath) HasPrefix(prefix ModulePath) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

// ParseModulePath splits a "::"-joined path string into a ModulePath. This
// is the inverse of String and is idempotent under repeated
// Parse/String/Parse round trips (Normalize(Normalize(p)) = Normalize(p)).
func ParseModulePath(s string) ModulePath {
	if s == "" {
		return ModulePath{}
	}
	return ModulePath(strings.Split(s, "::"))
}

// Normalize returns a canonical ModulePath with no empty segments, making
// repeated normalization idempotent regardless of stray separators.
func Normalize(p ModulePath) ModulePath {
	out := make(ModulePath, 0, len(p))
	for _, seg := range p {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
