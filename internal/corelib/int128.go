package corelib

import (
	"fmt"
	"math/big"
	"math/bits"
	"strings"
)

// Uint128 is an unsigned 128-bit integer, represented as two 64-bit limbs.
// Int.magnitude in the data model  is exactly this type; sign is
// tracked separately by the caller (Value.Int.negative).
//
// Mul below is a full, correct 128x128->128 modular multiply built from
// the partial products that land below bit 128, with no approximating
// fallback path.
type Uint128 struct {
	Hi, Lo uint64
}

// Zero128 is the additive identity.
var Zero128 = Uint128{}

// FromUint64 widens a uint64 to Uint128.
func FromUint64(v uint64) Uint128 { return Uint128{Lo: v} }

func (a Uint128) IsZero() bool { return a.Hi == 0 && a.Lo == 0 }

// String renders a in decimal, for diagnostics and Value display only, never on a hot arithmetic path.
func (a Uint128) String() string {
	hi := new(big.Int).SetUint64(a.Hi)
	hi.Lsh(hi, 64)
	lo := new(big.Int).SetUint64(a.Lo)
	return hi.Add(hi, lo).String()
}

// Add returns a+b mod 2^128.
func (a Uint128) Add(b Uint128) Uint128 {
	lo, carry := bits.Add64(a.Lo, b.Lo, 0)
	hi, _ := bits.Add64(a.Hi, b.Hi, carry)
	return Uint128{Hi: hi, Lo: lo}
}

// Sub returns a-b mod 2^128.
func (a Uint128) Sub(b Uint128) Uint128 {
	lo, borrow := bits.Sub64(a.Lo, b.Lo, 0)
	hi, _ := bits.Sub64(a.Hi, b.Hi, borrow)
	return Uint128{Hi: hi, Lo: lo}
}

// Mul returns a*b mod 2^128: the full 64x64->128 product of the low limbs
// plus the low 64 bits of the two cross products, summed at the correct
// bit offsets. There is no truncating fast path.
func (a Uint128) Mul(b Uint128) Uint128 {
	// lo*lo contributes to bits [0,128); hi*lo and lo*hi contribute to
	// bits [64,192) (only their low 64 bits of the high word matter mod
	// 2^128); hi*hi contributes entirely above bit 128 and is discarded.
	hiLo, loLo := bits.Mul64(a.Lo, b.Lo)
	loHi1 := a.Hi * b.Lo
	loHi2 := a.Lo * b.Hi

	hi := hiLo + loHi1 + loHi2
	return Uint128{Hi: hi, Lo: loLo}
}

// Lsh returns a<<n for n in [0,128). n>=128 yields zero.
func (a Uint128) Lsh(n uint) Uint128 {
	if n == 0 {
		return a
	}
	if n >= 128 {
		return Uint128{}
	}
	if n >= 64 {
		return Uint128{Hi: a.Lo << (n - 64), Lo: 0}
	}
	return Uint128{Hi: (a.Hi << n) | (a.Lo >> (64 - n)), Lo: a.Lo << n}
}

// Rsh returns a>>n (logical) for n in [0,128).
func (a Uint128) Rsh(n uint) Uint128 {
	if n == 0 {
		return a
	}
	if n >= 128 {
		return Uint128{}
	}
	if n >= 64 {
		return Uint128{Hi: 0, Lo: a.Hi >> (n - 64)}
	}
	return Uint128{Hi: a.Hi >> n, Lo: (a.Lo >> n) | (a.Hi << (64 - n))}
}

func (a Uint128) And(b Uint128) Uint128 { return Uint128{Hi: a.Hi & b.Hi, Lo: a.Lo & b.Lo} }
func (a Uint128) Or(b Uint128) Uint128  { return Uint128{Hi: a.Hi | b.Hi, Lo: a.Lo | b.Lo} }
func (a Uint128) Xor(b Uint128) Uint128 { return Uint128{Hi: a.Hi ^ b.Hi, Lo: a.Lo ^ b.Lo} }
func (a Uint128) Not() Uint128          { return Uint128{Hi: ^a.Hi, Lo: ^a.Lo} }

// Cmp returns -1, 0, or 1.
func (a Uint128) Cmp(b Uint128) int {
	if a.Hi != b.Hi {
		if a.Hi < b.Hi {
			return -1
		}
		return 1
	}
	if a.Lo != b.Lo {
		if a.Lo < b.Lo {
			return -1
		}
		return 1
	}
	return 0
}

// FitsBits reports whether a fits in the low `width` bits (unsigned).
func (a Uint128) FitsBits(width uint) bool {
	if width >= 128 {
		return true
	}
	return a.Rsh(width).IsZero()
}

// Bytes returns the little-endian byte encoding truncated/padded to n bytes.
func (a Uint128) Bytes(n int) []byte {
	buf := make([]byte, 16)
	for i := 0; i < 8; i++ {
		buf[i] = byte(a.Lo >> (8 * i))
		buf[8+i] = byte(a.Hi >> (8 * i))
	}
	if n <= 16 {
		return buf[:n]
	}
	out := make([]byte, n)
	copy(out, buf)
	return out
}

// Uint128FromBytes decodes a little-endian byte slice (len<=16) into a Uint128.
func Uint128FromBytes(b []byte) Uint128 {
	var lo, hi uint64
	for i := 0; i < len(b) && i < 8; i++ {
		lo |= uint64(b[i]) << (8 * i)
	}
	for i := 8; i < len(b) && i < 16; i++ {
		hi |= uint64(b[i]) << (8 * (i - 8))
	}
	return Uint128{Hi: hi, Lo: lo}
}

// ErrOverflow128 is returned by parsing routines when a literal exceeds 128 bits.
var ErrOverflow128 = fmt.Errorf("integer literal overflows 128 bits")

// ParseUint128 parses s (with optional `_` digit separators already
// stripped by the caller) in the given base (2, 8, 10, or 16), performing
// all arithmetic in 128-bit precision and reporting overflow past the 128th
// bit rather than silently wrapping.
func ParseUint128(s string, base int) (Uint128, error) {
	if s == "" {
		return Uint128{}, fmt.Errorf("empty integer literal")
	}
	acc := Uint128{}
	for _, r := range s {
		d, ok := digitValue(r)
		if !ok || int(d) >= base {
			return Uint128{}, fmt.Errorf("invalid digit %q for base %d", r, base)
		}
		next, overflow := mulAddSmall(acc, uint64(base), d)
		if overflow {
			return Uint128{}, ErrOverflow128
		}
		acc = next
	}
	return acc, nil
}

// mulAddSmall computes acc*base+digit to full 128-bit precision, where base
// and digit are each known to fit in 64 bits (true for bases 2/8/10/16 and
// any single digit value). It reports whether the true result exceeds 128
// bits rather than wrapping silently.
func mulAddSmall(acc Uint128, base, digit uint64) (Uint128, bool) {
	loHi, loLo := bits.Mul64(acc.Lo, base)
	hiHi, hiLo := bits.Mul64(acc.Hi, base)
	if hiHi != 0 {
		return Uint128{}, true
	}
	sumHi, carry := bits.Add64(loHi, hiLo, 0)
	if carry != 0 {
		return Uint128{}, true
	}
	finalLo, carry2 := bits.Add64(loLo, digit, 0)
	finalHi, carry3 := bits.Add64(sumHi, 0, carry2)
	if carry3 != 0 {
		return Uint128{}, true
	}
	return Uint128{Hi: finalHi, Lo: finalLo}, false
}

func digitValue(r rune) (uint64, bool) {
	switch {
	case r >= '0' && r <= '9':
		return uint64(r - '0'), true
	case r >= 'a' && r <= 'f':
		return uint64(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return uint64(r-'A') + 10, true
	default:
		return 0, false
	}
}

// StripUnderscores removes `_` digit-group separators from an integer
// literal's digit text
func StripUnderscores(s string) string {
	if !strings.ContainsRune(s, '_') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r != '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
