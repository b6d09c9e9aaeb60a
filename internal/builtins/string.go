package builtins

import (
	"strings"

	"github.com/cursive-lang/corec/internal/corelib"
	"github.com/cursive-lang/corec/internal/semtype"
	"github.com/cursive-lang/corec/internal/sigma"
)

func managedString(b []byte) sigma.StringVal {
	return sigma.StringVal{State: semtype.StateManaged, Bytes: b}
}

func viewString(b []byte) sigma.StringVal {
	return sigma.StringVal{State: semtype.StateView, Bytes: b}
}

var (
	managedStringType = &semtype.StringTy{State: semtype.StateManaged}
	unitType          = &semtype.Prim{Kind: semtype.Unit}
)

// StringFrom implements `string::from`: copies a view into freshly
// allocated managed storage.
func StringFrom(s *sigma.Sigma, src sigma.StringVal) sigma.Value {
	b := append([]byte{}, src.Bytes...)
	return wrapAlloc(s, managedStringType, uint64(len(b)), managedString(b))
}

// StringAsView implements `string::as_view`: a non-allocating reborrow,
// always succeeds.
func StringAsView(src sigma.StringVal) sigma.Value {
	return viewString(src.Bytes)
}

// StringToManaged implements `string::to_managed`: promotes a view to
// owned managed storage, allocating a copy.
func StringToManaged(s *sigma.Sigma, src sigma.StringVal) sigma.Value {
	b := append([]byte{}, src.Bytes...)
	return wrapAlloc(s, managedStringType, uint64(len(b)), managedString(b))
}

// StringCloneWith implements `string::clone_with`: allocates a new
// managed string by applying transform to src's bytes.
func StringCloneWith(s *sigma.Sigma, src sigma.StringVal, transform func([]byte) []byte) sigma.Value {
	b := transform(append([]byte{}, src.Bytes...))
	return wrapAlloc(s, managedStringType, uint64(len(b)), managedString(b))
}

// StringAppend implements `string::append`: appends view's bytes onto a
// `&unique` self. Returns the grown string for the caller to write back
// through self's place on success, alongside the Ok(())/Err(...) result
// the procedure itself returns; on failure the returned string equals
// self unchanged.
func StringAppend(s *sigma.Sigma, self, view sigma.StringVal) (sigma.StringVal, sigma.Value) {
	size := uint64(len(view.Bytes))
	if !s.HeapAlloc(size) {
		return self, sigma.UnionVal{Member: allocationErrorType, Value: outOfMemory(size)}
	}
	grown := managedString(append(append([]byte{}, self.Bytes...), view.Bytes...))
	return grown, sigma.UnionVal{Member: unitType, Value: sigma.UnitVal{}}
}

// StringConcat implements `string::concat`, allocating a new managed
// string holding a's bytes followed by b's.
func StringConcat(s *sigma.Sigma, a, b sigma.StringVal) sigma.Value {
	joined := append(append([]byte{}, a.Bytes...), b.Bytes...)
	return wrapAlloc(s, managedStringType, uint64(len(joined)), managedString(joined))
}

// StringSlice implements `string::slice`, allocating a new managed
// string holding the UTF-8 rune range [start, end) of src.
func StringSlice(s *sigma.Sigma, src sigma.StringVal, start, end int) sigma.Value {
	runes := []rune(string(src.Bytes))
	start, end = clampRuneRange(start, end, len(runes))
	b := []byte(string(runes[start:end]))
	return wrapAlloc(s, managedStringType, uint64(len(b)), managedString(b))
}

// StringLength implements `string::length`: the UTF-8 rune count.
// Non-allocating, so it returns the count directly rather than a
// union-wrapped result, see DESIGN.md's Open Question decision on
// which string/bytes operations can fail with AllocationError.
func StringLength(src sigma.StringVal) sigma.Value {
	n := len([]rune(string(src.Bytes)))
	return sigma.IntVal{Kind: semtype.USize, Magnitude: corelib.FromUint64(uint64(n))}
}

// StringIsEmpty implements `string::is_empty`.
func StringIsEmpty(src sigma.StringVal) sigma.Value {
	return sigma.BoolVal{V: len(src.Bytes) == 0}
}

// StringCharAt implements `string::char_at`, returning the rune at a
// UTF-8 rune index or ok=false if out of range.
func StringCharAt(src sigma.StringVal, idx int) (sigma.Value, bool) {
	runes := []rune(string(src.Bytes))
	if idx < 0 || idx >= len(runes) {
		return nil, false
	}
	return sigma.CharVal{V: runes[idx]}, true
}

// StringStartsWith implements the supplemental `string::starts_with`.
func StringStartsWith(src, prefix sigma.StringVal) sigma.Value {
	return sigma.BoolVal{V: strings.HasPrefix(string(src.Bytes), string(prefix.Bytes))}
}

// StringEndsWith implements the supplemental `string::ends_with`.
func StringEndsWith(src, suffix sigma.StringVal) sigma.Value {
	return sigma.BoolVal{V: strings.HasSuffix(string(src.Bytes), string(suffix.Bytes))}
}

// StringFind implements the supplemental `string::find`, returning the
// UTF-8 rune index of needle's first occurrence or ok=false if absent.
func StringFind(src, needle sigma.StringVal) (sigma.Value, bool) {
	byteIdx := strings.Index(string(src.Bytes), string(needle.Bytes))
	if byteIdx < 0 {
		return nil, false
	}
	runeIdx := len([]rune(string(src.Bytes[:byteIdx])))
	return sigma.IntVal{Kind: semtype.USize, Magnitude: corelib.FromUint64(uint64(runeIdx))}, true
}

func clampRuneRange(start, end, length int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > length {
		end = length
	}
	if start > end {
		start = end
	}
	return start, end
}
