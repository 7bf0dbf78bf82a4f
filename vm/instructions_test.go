package vm

import (
	"math/big"
	"testing"
)

// Property 3: sub(add(a,b), b) = a (wrapping laws).
func TestWrappingAddSubLaw(t *testing.T) {
	vals := []*big.Int{
		big.NewInt(0), big.NewInt(1), big.NewInt(42),
		new(big.Int).Set(tt256m1),
		new(big.Int).Sub(tt256m1, big.NewInt(1)),
	}
	for _, a := range vals {
		for _, b := range vals {
			sum := Add(a, b)
			back := Sub(sum, b)
			if back.Cmp(a) != 0 {
				t.Errorf("Sub(Add(%s,%s),%s) = %s, want %s", a, b, b, back, a)
			}
		}
	}
}

// Property 4: a = mul(div(a,b), b) + rem(a,b), for b != 0.
func TestEuclideanDivRemIdentity(t *testing.T) {
	pairs := []struct{ a, b int64 }{
		{17, 5}, {100, 7}, {0, 3}, {1, 1}, {255, 16},
	}
	for _, p := range pairs {
		a := big.NewInt(p.a)
		b := big.NewInt(p.b)
		q := Div(a, b)
		r := Mod(a, b)
		got := Add(Mul(q, b), r)
		if got.Cmp(a) != 0 {
			t.Errorf("mul(div(%d,%d),%d)+rem = %s, want %d", p.a, p.b, p.b, got, p.a)
		}
	}
}

// Property 5: encode then decode is identity.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	vals := []*big.Int{
		big.NewInt(0), big.NewInt(1), big.NewInt(255),
		new(big.Int).Set(tt256m1),
	}
	for _, v := range vals {
		enc := Encode32(v)
		got := Decode32(enc)
		if got.Cmp(v) != 0 {
			t.Errorf("Decode32(Encode32(%s)) = %s, want %s", v, got, v)
		}
	}
}

func TestDivByZeroConvention(t *testing.T) {
	if Div(big.NewInt(5), big.NewInt(0)).Sign() != 0 {
		t.Error("Div by zero should yield 0")
	}
	if Mod(big.NewInt(5), big.NewInt(0)).Sign() != 0 {
		t.Error("Mod by zero should yield 0")
	}
}

func TestAddModMulModFullWidth(t *testing.T) {
	// (2^256 - 1) + 2 mod 10, computed without losing the overflow before the mod.
	a := new(big.Int).Set(tt256m1)
	b := big.NewInt(2)
	c := big.NewInt(10)
	got := AddMod(a, b, c)
	want := new(big.Int).Mod(new(big.Int).Add(a, b), c)
	if got.Cmp(want) != 0 {
		t.Errorf("AddMod = %s, want %s", got, want)
	}

	got = MulMod(a, a, c)
	want = new(big.Int).Mod(new(big.Int).Mul(a, a), c)
	if got.Cmp(want) != 0 {
		t.Errorf("MulMod = %s, want %s", got, want)
	}
}

// Signed division edge case: MIN / -1 saturates to MIN, does not trap.
func TestSignedDivMinByMinusOneSaturates(t *testing.T) {
	min := MinI256()
	negOne := NewI256(FromSigned256(big.NewInt(-1)))
	got := SignedDiv(min, negOne)
	if !got.Equal(min) {
		t.Errorf("MIN / -1 = %v, want MIN", got.Word())
	}
}

func TestSignedRemFollowsDividendSign(t *testing.T) {
	negSeven := NewI256(FromSigned256(big.NewInt(-7)))
	three := NewI256(big.NewInt(3))
	got := SignedRem(negSeven, three)
	if got.sign != Negative {
		t.Errorf("SignedRem(-7,3) sign = %v, want Negative", got.sign)
	}
	if got.Word().Cmp(FromSigned256(big.NewInt(-1))) != 0 {
		t.Errorf("SignedRem(-7,3) = %s, want two's-complement -1", got.Word())
	}
}

func TestShiftEdgeCases(t *testing.T) {
	if Shl(big.NewInt(1), big.NewInt(256)).Sign() != 0 {
		t.Error("Shl with shift >= 256 should yield 0")
	}
	if Shr(big.NewInt(1), big.NewInt(256)).Sign() != 0 {
		t.Error("Shr with shift >= 256 should yield 0")
	}
	if Shl(big.NewInt(0), big.NewInt(3)).Sign() != 0 {
		t.Error("Shl of 0 should yield 0")
	}
}

func TestByteAtOutOfRangeIsZero(t *testing.T) {
	if ByteAt(32, big.NewInt(0xff)) != 0 {
		t.Error("ByteAt(32, ...) should be 0 (i >= 32)")
	}
}

// Pushing a PUSHk instruction whose immediate runs past the end of code
// pads missing low bytes with zero rather than erroring.
func TestPushPastEndOfCodeIsZeroPadded(t *testing.T) {
	code := []byte{byte(PUSH4), 0xaa, 0xbb} // only 2 of 4 immediate bytes present
	m := New(code)
	m.Step()
	top, err := m.Stack().Peek(0)
	if err != nil {
		t.Fatalf("Peek error: %v", err)
	}
	// 0xaa 0xbb 0x00 0x00 — missing trailing immediate bytes treated as zero.
	want := new(big.Int).Lsh(big.NewInt(0xaabb), 16)
	if top.Cmp(want) != 0 {
		t.Errorf("PUSH4 past end of code = %x, want %x", top, want)
	}
}

func TestPopPushStackBalance(t *testing.T) {
	// PUSH1 1, PUSH1 2, ADD, POP, STOP — stack should be empty at the end.
	code := mustDecode(t, "60 01 60 02 01 50 00")
	m := New(code)
	status := m.Run()
	if status != StatusStopped {
		t.Fatalf("status = %v, want Stopped", status)
	}
	if m.Stack().Len() != 0 {
		t.Errorf("stack len = %d, want 0", m.Stack().Len())
	}
}

func TestDupAndSwapSemantics(t *testing.T) {
	// PUSH1 1, PUSH1 2, PUSH1 3, DUP3, SWAP1, STOP
	code := mustDecode(t, "60 01 60 02 60 03 82 90 00")
	m := New(code)
	status := m.Run()
	if status != StatusStopped {
		t.Fatalf("status = %v, want Stopped, err=%v", status, m.Err())
	}
	// after push 1,2,3: [1,2,3] (top=3)
	// DUP3 duplicates depth-2 element (1): [1,2,3,1] (top=1)
	// SWAP1 swaps top with depth-1: [1,2,1,3] (top=3)
	if m.Stack().Len() != 4 {
		t.Fatalf("stack len = %d, want 4", m.Stack().Len())
	}
	top, _ := m.Stack().Peek(0)
	if top.Int64() != 3 {
		t.Errorf("top = %d, want 3", top.Int64())
	}
}

func TestMemorySizeAlwaysMultipleOf32(t *testing.T) {
	// PUSH1 1, PUSH1 1, MSTORE8, MSIZE, STOP
	code := mustDecode(t, "60 01 60 01 53 59 00")
	m := New(code)
	status := m.Run()
	if status != StatusStopped {
		t.Fatalf("status = %v, want Stopped, err=%v", status, m.Err())
	}
	top, _ := m.Stack().Peek(0)
	if top.Uint64()%32 != 0 {
		t.Errorf("MSIZE = %d, not a multiple of 32", top.Uint64())
	}
}
