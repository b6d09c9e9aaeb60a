package builtins

import (
	"bytes"
	"unicode/utf8"

	"github.com/cursive-lang/corec/internal/corelib"
	"github.com/cursive-lang/corec/internal/semtype"
	"github.com/cursive-lang/corec/internal/sigma"
)

func managedBytes(b []byte) sigma.BytesVal {
	return sigma.BytesVal{State: semtype.StateManaged, Bytes: b}
}

func viewBytes(b []byte) sigma.BytesVal {
	return sigma.BytesVal{State: semtype.StateView, Bytes: b}
}

var managedBytesType = &semtype.BytesTy{State: semtype.StateManaged}

// BytesFrom implements `bytes::from`.
func BytesFrom(s *sigma.Sigma, src sigma.BytesVal) sigma.Value {
	b := append([]byte{}, src.Bytes...)
	return wrapAlloc(s, managedBytesType, uint64(len(b)), managedBytes(b))
}

// BytesAsView implements `bytes::as_view`.
func BytesAsView(src sigma.BytesVal) sigma.Value {
	return viewBytes(src.Bytes)
}

// BytesToManaged implements `bytes::to_managed`.
func BytesToManaged(s *sigma.Sigma, src sigma.BytesVal) sigma.Value {
	b := append([]byte{}, src.Bytes...)
	return wrapAlloc(s, managedBytesType, uint64(len(b)), managedBytes(b))
}

// BytesCloneWith implements `bytes::clone_with`.
func BytesCloneWith(s *sigma.Sigma, src sigma.BytesVal, transform func([]byte) []byte) sigma.Value {
	b := transform(append([]byte{}, src.Bytes...))
	return wrapAlloc(s, managedBytesType, uint64(len(b)), managedBytes(b))
}

// BytesAppend implements `bytes::append`, mirroring StringAppend's
// write-back convention.
func BytesAppend(s *sigma.Sigma, self, view sigma.BytesVal) (sigma.BytesVal, sigma.Value) {
	size := uint64(len(view.Bytes))
	if !s.HeapAlloc(size) {
		return self, sigma.UnionVal{Member: allocationErrorType, Value: outOfMemory(size)}
	}
	grown := managedBytes(append(append([]byte{}, self.Bytes...), view.Bytes...))
	return grown, sigma.UnionVal{Member: unitType, Value: sigma.UnitVal{}}
}

// BytesConcat implements `bytes::concat`.
func BytesConcat(s *sigma.Sigma, a, b sigma.BytesVal) sigma.Value {
	joined := append(append([]byte{}, a.Bytes...), b.Bytes...)
	return wrapAlloc(s, managedBytesType, uint64(len(joined)), managedBytes(joined))
}

// BytesSlice implements `bytes::slice` over a byte range.
func BytesSlice(s *sigma.Sigma, src sigma.BytesVal, start, end int) sigma.Value {
	if start < 0 {
		start = 0
	}
	if end > len(src.Bytes) {
		end = len(src.Bytes)
	}
	if start > end {
		start = end
	}
	b := append([]byte{}, src.Bytes[start:end]...)
	return wrapAlloc(s, managedBytesType, uint64(len(b)), managedBytes(b))
}

// BytesLength implements `bytes::length`.
func BytesLength(src sigma.BytesVal) sigma.Value {
	return sigma.IntVal{Kind: semtype.USize, Magnitude: corelib.FromUint64(uint64(len(src.Bytes)))}
}

// BytesIsEmpty implements `bytes::is_empty`.
func BytesIsEmpty(src sigma.BytesVal) sigma.Value {
	return sigma.BoolVal{V: len(src.Bytes) == 0}
}

// BytesStartsWith implements the supplemental `bytes::starts_with`.
func BytesStartsWith(src, prefix sigma.BytesVal) sigma.Value {
	return sigma.BoolVal{V: bytes.HasPrefix(src.Bytes, prefix.Bytes)}
}

// BytesEndsWith implements the supplemental `bytes::ends_with`.
func BytesEndsWith(src, suffix sigma.BytesVal) sigma.Value {
	return sigma.BoolVal{V: bytes.HasSuffix(src.Bytes, suffix.Bytes)}
}

// BytesFind implements the supplemental `bytes::find`.
func BytesFind(src, needle sigma.BytesVal) (sigma.Value, bool) {
	idx := bytes.Index(src.Bytes, needle.Bytes)
	if idx < 0 {
		return nil, false
	}
	return sigma.IntVal{Kind: semtype.USize, Magnitude: corelib.FromUint64(uint64(idx))}, true
}

// StringFromBytes implements `string::from_bytes`, gated by UTF-8
// validity's supplement, a malformed sequence panics
// Cast rather than silently lossy-converting.
func StringFromBytes(s *sigma.Sigma, src sigma.BytesVal) (sigma.Value, sigma.Control) {
	if !utf8.Valid(src.Bytes) {
		return nil, s.Raise(sigma.Cast, "bytes are not valid UTF-8")
	}
	b := append([]byte{}, src.Bytes...)
	return wrapAlloc(s, managedStringType, uint64(len(b)), managedString(b)), sigma.Control{}
}

// BytesFromString implements `bytes::from_string`: always valid, since
// every string is already well-formed UTF-8 bytes.
func BytesFromString(s *sigma.Sigma, src sigma.StringVal) sigma.Value {
	b := append([]byte{}, src.Bytes...)
	return wrapAlloc(s, managedBytesType, uint64(len(b)), managedBytes(b))
}
