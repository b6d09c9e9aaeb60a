package corelib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUnicodeScalarRejectsSurrogates(t *testing.T) {
	assert.False(t, IsUnicodeScalar(0xD800))
	assert.False(t, IsUnicodeScalar(0xDFFF))
	assert.True(t, IsUnicodeScalar(0x41))
	assert.True(t, IsUnicodeScalar(0x10FFFF))
	assert.False(t, IsUnicodeScalar(0x110000))
}

func TestValidUTF8(t *testing.T) {
	assert.True(t, ValidUTF8([]byte("hello")))
	assert.False(t, ValidUTF8([]byte{0xff, 0xfe}))
}

func TestNFCNormalizes(t *testing.T) {
	decomposed := "é" // e + combining acute
	composed := NFC(decomposed)
	assert.Equal(t, "é", composed)
}
