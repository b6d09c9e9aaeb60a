package corelib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFNV1aKnownVector(t *testing.T) {
	// FNV-1a 64-bit of the empty string is the offset basis itself.
	assert.Equal(t, uint64(0xCBF29CE484222325), FNV1a64(nil))
}

func TestHex64Format(t *testing.T) {
	assert.Equal(t, "0000000000000000", Hex64(0))
	assert.Equal(t, "FFFFFFFFFFFFFFFF", Hex64(^uint64(0)))
	assert.Len(t, Hex64(1), 16)
}

func TestMangleKeepsAlnum(t *testing.T) {
	assert.Equal(t, "fooBar123", Mangle("fooBar123"))
}

func TestMangleEscapesOthers(t *testing.T) {
	assert.Equal(t, "a_x3ab", Mangle("a:b"))
	assert.Equal(t, "_x2d_x2d", Mangle("--"))
}

func TestPathSigJoinsWithDoubleColon(t *testing.T) {
	got := PathSig([]string{"cursive", "runtime", "fs", "open_read"})
	want := Mangle("cursive::runtime::fs::open_read")
	assert.Equal(t, want, got)
}

func TestLiteralIDIsStable(t *testing.T) {
	a := LiteralID("string", []byte("hello"))
	b := LiteralID("string", []byte("hello"))
	c := LiteralID("string", []byte("world"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestMangleNFCIdempotent(t *testing.T) {
	// NFC is idempotent under Mangle: Mangle(NFC(NFC(s))) = Mangle(NFC(s))
	s := "café" // "cafe" + combining acute accent (decomposed é)
	once := Mangle(NFC(s))
	twice := Mangle(NFC(NFC(s)))
	assert.Equal(t, once, twice)
}
