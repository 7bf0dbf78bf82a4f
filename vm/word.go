package vm

import "math/big"

// Word is the uniform 256-bit stack element, represented as a *big.Int
// masked to [0, 2^256) rather than a dedicated fixed-width type: math/big
// already provides correct arbitrary-precision arithmetic, and masking
// after each op is the cheapest way to get wrapping 256-bit semantics on
// top of it.
var (
	big0    = new(big.Int)
	big1    = big.NewInt(1)
	tt256   = new(big.Int).Lsh(big1, 256)         // 2^256
	tt256m1 = new(big.Int).Sub(tt256, big1)        // 2^256 - 1
	tt255   = new(big.Int).Lsh(big1, 255)          // 2^255
)

// MaskWord masks val down to the low 256 bits, mutating and returning it.
func MaskWord(val *big.Int) *big.Int {
	return val.And(val, tt256m1)
}

// ToSigned256 interprets an unsigned 256-bit value as two's complement signed.
func ToSigned256(val *big.Int) *big.Int {
	if val.Cmp(tt255) < 0 {
		return val
	}
	return new(big.Int).Sub(val, tt256)
}

// FromSigned256 converts a signed big.Int back to its unsigned 256-bit representation.
func FromSigned256(val *big.Int) *big.Int {
	if val.Sign() >= 0 {
		return MaskWord(new(big.Int).Set(val))
	}
	return new(big.Int).Add(val, tt256)
}

// Add returns the wrapping sum a+b mod 2^256.
func Add(a, b *big.Int) *big.Int {
	return MaskWord(new(big.Int).Add(a, b))
}

// Sub returns the wrapping difference a-b mod 2^256.
func Sub(a, b *big.Int) *big.Int {
	return MaskWord(new(big.Int).Sub(a, b))
}

// Mul returns the wrapping product a*b mod 2^256.
func Mul(a, b *big.Int) *big.Int {
	return MaskWord(new(big.Int).Mul(a, b))
}

// Exp returns a^b mod 2^256.
func Exp(a, b *big.Int) *big.Int {
	return new(big.Int).Exp(a, b, tt256)
}

// Div returns floor(a/b), or 0 if b is zero (EVM convention).
func Div(a, b *big.Int) *big.Int {
	if b.Sign() == 0 {
		return new(big.Int)
	}
	return new(big.Int).Div(a, b)
}

// Mod returns a mod b, or 0 if b is zero (EVM convention).
func Mod(a, b *big.Int) *big.Int {
	if b.Sign() == 0 {
		return new(big.Int)
	}
	return new(big.Int).Mod(a, b)
}

// AddMod returns (a+b) mod c, or 0 if c is zero. The addition is performed
// on unmasked big.Int operands so no 256-bit wrap loss occurs before the mod.
func AddMod(a, b, c *big.Int) *big.Int {
	if c.Sign() == 0 {
		return new(big.Int)
	}
	sum := new(big.Int).Add(a, b)
	return sum.Mod(sum, c)
}

// MulMod returns (a*b) mod c, or 0 if c is zero, with a full-width intermediate product.
func MulMod(a, b, c *big.Int) *big.Int {
	if c.Sign() == 0 {
		return new(big.Int)
	}
	prod := new(big.Int).Mul(a, b)
	return prod.Mod(prod, c)
}

// And returns a & b.
func And(a, b *big.Int) *big.Int {
	return new(big.Int).And(a, b)
}

// Or returns a | b.
func Or(a, b *big.Int) *big.Int {
	return new(big.Int).Or(a, b)
}

// Xor returns a ^ b.
func Xor(a, b *big.Int) *big.Int {
	return new(big.Int).Xor(a, b)
}

// Not returns the 256-bit bitwise complement of a.
func Not(a *big.Int) *big.Int {
	return MaskWord(new(big.Int).Not(a))
}

// Shl returns value << shift, or 0 if shift >= 256 or value is zero.
func Shl(value, shift *big.Int) *big.Int {
	if value.Sign() == 0 || shift.Cmp(big.NewInt(256)) >= 0 {
		return new(big.Int)
	}
	return MaskWord(new(big.Int).Lsh(value, uint(shift.Uint64())))
}

// Shr returns value >> shift (logical), or 0 if shift >= 256 or value is zero.
func Shr(value, shift *big.Int) *big.Int {
	if value.Sign() == 0 || shift.Cmp(big.NewInt(256)) >= 0 {
		return new(big.Int)
	}
	return new(big.Int).Rsh(value, uint(shift.Uint64()))
}

// Sar returns the signed arithmetic right shift of value by shift.
func Sar(value, shift *big.Int) *big.Int {
	signed := ToSigned256(value)
	if shift.Cmp(big.NewInt(256)) >= 0 {
		if signed.Sign() < 0 {
			return new(big.Int).Set(tt256m1)
		}
		return new(big.Int)
	}
	n := uint(shift.Uint64())
	if signed.Sign() >= 0 {
		return new(big.Int).Rsh(signed, n)
	}
	// big.Int.Rsh on a negative value performs floor division, matching
	// the arithmetic-shift-right semantics expected here.
	return FromSigned256(new(big.Int).Rsh(signed, n))
}

// ByteAt returns byte i of the 32-byte big-endian encoding of val, or 0 if i >= 32.
func ByteAt(i uint64, val *big.Int) byte {
	if i >= 32 {
		return 0
	}
	enc := Encode32(val)
	return enc[i]
}

// Encode32 returns the big-endian 32-byte encoding of val.
func Encode32(val *big.Int) [32]byte {
	var out [32]byte
	b := val.Bytes()
	if len(b) > 32 {
		b = b[len(b)-32:]
	}
	copy(out[32-len(b):], b)
	return out
}

// Decode32 interprets a 32-byte big-endian array as a Word.
func Decode32(b [32]byte) *big.Int {
	return new(big.Int).SetBytes(b[:])
}

// maxHostIndex is the largest value representable as a host index (64-bit
// unsigned); this core stores memory offsets/sizes as uint64.
var maxHostIndex = new(big.Int).SetUint64(^uint64(0))

// ToHostIndex converts val to a bounded uint64, reporting overflow rather than wrapping or panicking.
func ToHostIndex(val *big.Int) (uint64, bool) {
	if val.Sign() < 0 || val.Cmp(maxHostIndex) > 0 {
		return 0, false
	}
	return val.Uint64(), true
}

// Sign is the sign of a signed (two's complement) 256-bit interpretation.
type Sign int

const (
	// Zero is the sign of the value zero.
	Zero Sign = iota
	// Positive is the sign of a strictly positive value.
	Positive
	// Negative is the sign of a strictly negative value.
	Negative
)

// I256 is the signed view of a 256-bit word: a sign plus an unsigned magnitude.
type I256 struct {
	sign Sign
	mag  *big.Int // absolute value, always >= 0
}

// signMask is the bit-255 sign mask (2^255 - 1), used to recover the
// magnitude of the minimum negative value without overflowing back to zero.
var signMask = new(big.Int).Sub(tt255, big1)

// NewI256 interprets an unsigned 256-bit Word as its two's complement signed view.
func NewI256(v *big.Int) I256 {
	if v.Sign() == 0 {
		return I256{sign: Zero, mag: new(big.Int)}
	}
	if v.Cmp(tt255) < 0 {
		return I256{sign: Positive, mag: new(big.Int).Set(v)}
	}
	// Negative: magnitude is two's complement negation, ~v + 1 mod 2^256.
	mag := new(big.Int).Sub(tt256, v)
	return I256{sign: Negative, mag: mag}
}

// MinI256 returns the minimum representable signed 256-bit value.
func MinI256() I256 {
	return I256{sign: Negative, mag: new(big.Int).Add(signMask, big1)}
}

// Word converts the signed view back to its unsigned 256-bit representation.
func (v I256) Word() *big.Int {
	switch v.sign {
	case Zero:
		return new(big.Int)
	case Positive:
		return new(big.Int).Set(v.mag)
	default:
		return MaskWord(new(big.Int).Sub(tt256, v.mag))
	}
}

// Equal reports whether v and other are the same signed integer.
func (v I256) Equal(other I256) bool {
	return v.Cmp(other) == 0
}

// Cmp returns -1, 0, or 1 as v is less than, equal to, or greater than other.
func (v I256) Cmp(other I256) int {
	switch {
	case v.sign == Zero && other.sign == Zero:
		return 0
	case v.sign == Zero:
		if other.sign == Positive {
			return -1
		}
		return 1
	case other.sign == Zero:
		if v.sign == Positive {
			return 1
		}
		return -1
	case v.sign == Negative && other.sign == Positive:
		return -1
	case v.sign == Positive && other.sign == Negative:
		return 1
	case v.sign == Negative && other.sign == Negative:
		return -v.mag.Cmp(other.mag) // larger magnitude is more negative, so the comparison flips
	default: // both Positive
		return v.mag.Cmp(other.mag)
	}
}

// SignedDiv returns the truncating signed quotient v/other. Division by
// zero yields zero. MIN / -1 saturates to MIN rather than overflowing.
func SignedDiv(v, other I256) I256 {
	if other.sign == Zero {
		return I256{sign: Zero, mag: new(big.Int)}
	}
	min := MinI256()
	if v.Equal(min) && other.mag.Cmp(big1) == 0 && other.sign == Negative {
		return min
	}

	mag := new(big.Int).Div(v.mag, other.mag)
	if mag.Sign() == 0 {
		return I256{sign: Zero, mag: mag}
	}
	if v.sign == other.sign {
		return I256{sign: Positive, mag: mag}
	}
	return I256{sign: Negative, mag: mag}
}

// SignedRem returns the signed remainder of v/other; the result's sign
// follows the dividend (v), per EVM's SMOD semantics. Division by zero
// yields zero.
func SignedRem(v, other I256) I256 {
	if other.sign == Zero {
		return I256{sign: Zero, mag: new(big.Int)}
	}
	mag := new(big.Int).Mod(v.mag, other.mag)
	if mag.Sign() == 0 {
		return I256{sign: Zero, mag: mag}
	}
	return I256{sign: v.sign, mag: mag}
}
