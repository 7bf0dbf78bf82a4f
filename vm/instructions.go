package vm

import "math/big"

// Instruction handlers: one function per opcode, each taking the running
// VM and returning a Control verdict. There is no gas metering, call stack,
// or host/state access here — only stack, memory and the program counter.
// PUSH/DUP/SWAP families are generated by closures since Go has no macros.

func opStop(vm *VM) Control {
	return Stop()
}

func binaryOp(vm *VM, fn func(a, b *big.Int) *big.Int) Control {
	a, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	b, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	if err := vm.stack.Push(fn(a, b)); err != nil {
		return Error(err)
	}
	return Continue(1)
}

func opAdd(vm *VM) Control { return binaryOp(vm, Add) }
func opMul(vm *VM) Control { return binaryOp(vm, Mul) }
func opSub(vm *VM) Control { return binaryOp(vm, Sub) }
func opDiv(vm *VM) Control { return binaryOp(vm, Div) }
func opMod(vm *VM) Control { return binaryOp(vm, Mod) }

func opSdiv(vm *VM) Control {
	return binaryOp(vm, func(a, b *big.Int) *big.Int {
		return SignedDiv(NewI256(a), NewI256(b)).Word()
	})
}

func opSmod(vm *VM) Control {
	return binaryOp(vm, func(a, b *big.Int) *big.Int {
		return SignedRem(NewI256(a), NewI256(b)).Word()
	})
}

func opExp(vm *VM) Control { return binaryOp(vm, Exp) }

func opAddmod(vm *VM) Control {
	a, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	b, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	m, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	if err := vm.stack.Push(AddMod(a, b, m)); err != nil {
		return Error(err)
	}
	return Continue(1)
}

func opMulmod(vm *VM) Control {
	a, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	b, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	m, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	if err := vm.stack.Push(MulMod(a, b, m)); err != nil {
		return Error(err)
	}
	return Continue(1)
}

func boolWord(b bool) *big.Int {
	if b {
		return big.NewInt(1)
	}
	return new(big.Int)
}

func opLt(vm *VM) Control {
	return binaryOp(vm, func(a, b *big.Int) *big.Int { return boolWord(a.Cmp(b) < 0) })
}

func opGt(vm *VM) Control {
	return binaryOp(vm, func(a, b *big.Int) *big.Int { return boolWord(a.Cmp(b) > 0) })
}

func opSlt(vm *VM) Control {
	return binaryOp(vm, func(a, b *big.Int) *big.Int {
		return boolWord(NewI256(a).Cmp(NewI256(b)) < 0)
	})
}

func opSgt(vm *VM) Control {
	return binaryOp(vm, func(a, b *big.Int) *big.Int {
		return boolWord(NewI256(a).Cmp(NewI256(b)) > 0)
	})
}

func opEq(vm *VM) Control {
	return binaryOp(vm, func(a, b *big.Int) *big.Int { return boolWord(a.Cmp(b) == 0) })
}

func opIszero(vm *VM) Control {
	a, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	if err := vm.stack.Push(boolWord(a.Sign() == 0)); err != nil {
		return Error(err)
	}
	return Continue(1)
}

func opAnd(vm *VM) Control { return binaryOp(vm, And) }
func opOr(vm *VM) Control  { return binaryOp(vm, Or) }
func opXor(vm *VM) Control { return binaryOp(vm, Xor) }

func opNot(vm *VM) Control {
	a, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	if err := vm.stack.Push(Not(a)); err != nil {
		return Error(err)
	}
	return Continue(1)
}

func opByte(vm *VM) Control {
	i, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	val, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	idx, ok := ToHostIndex(i)
	var b byte
	if ok {
		b = ByteAt(idx, val)
	}
	if err := vm.stack.Push(new(big.Int).SetUint64(uint64(b))); err != nil {
		return Error(err)
	}
	return Continue(1)
}

func opShl(vm *VM) Control {
	shift, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	val, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	if err := vm.stack.Push(Shl(val, shift)); err != nil {
		return Error(err)
	}
	return Continue(1)
}

func opShr(vm *VM) Control {
	shift, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	val, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	if err := vm.stack.Push(Shr(val, shift)); err != nil {
		return Error(err)
	}
	return Continue(1)
}

func opSar(vm *VM) Control {
	shift, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	val, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	if err := vm.stack.Push(Sar(val, shift)); err != nil {
		return Error(err)
	}
	return Continue(1)
}

func opPop(vm *VM) Control {
	if _, err := vm.stack.Pop(); err != nil {
		return Error(err)
	}
	return Continue(1)
}

func opMload(vm *VM) Control {
	offsetW, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	offset, ok := ToHostIndex(offsetW)
	if !ok {
		return Error(ErrUnsupportedOperation)
	}
	word, err := vm.memory.LoadWord(offset)
	if err != nil {
		return Error(err)
	}
	if err := vm.stack.Push(word); err != nil {
		return Error(err)
	}
	return Continue(1)
}

func opMstore(vm *VM) Control {
	offsetW, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	val, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	offset, ok := ToHostIndex(offsetW)
	if !ok {
		return Error(ErrUnsupportedOperation)
	}
	if err := vm.memory.StoreWord(offset, val); err != nil {
		return Error(err)
	}
	return Continue(1)
}

func opMstore8(vm *VM) Control {
	offsetW, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	val, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	offset, ok := ToHostIndex(offsetW)
	if !ok {
		return Error(ErrUnsupportedOperation)
	}
	if err := vm.memory.StoreByte(offset, byte(val.Uint64())); err != nil {
		return Error(err)
	}
	return Continue(1)
}

// opJump and opJumpi pop the destination first, then (for JUMPI) the
// condition as a full word — the canonical EVM pop order.
func opJump(vm *VM) Control {
	destW, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	dest, ok := ToHostIndex(destW)
	if !ok {
		return Error(ErrUnsupportedOperation)
	}
	if !vm.IsValidJump(dest) {
		return Error(ErrInvalidJump)
	}
	return Jump(dest)
}

func opJumpi(vm *VM) Control {
	destW, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	cond, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	if cond.Sign() == 0 {
		return Continue(1)
	}
	dest, ok := ToHostIndex(destW)
	if !ok {
		return Error(ErrUnsupportedOperation)
	}
	if !vm.IsValidJump(dest) {
		return Error(ErrInvalidJump)
	}
	return Jump(dest)
}

func opPc(vm *VM) Control {
	if err := vm.stack.Push(new(big.Int).SetUint64(vm.pc)); err != nil {
		return Error(err)
	}
	return Continue(1)
}

func opMsize(vm *VM) Control {
	if err := vm.stack.Push(new(big.Int).SetUint64(uint64(vm.memory.Len()))); err != nil {
		return Error(err)
	}
	return Continue(1)
}

func opJumpdest(vm *VM) Control {
	return Continue(1)
}

// makePush returns a handler that reads n immediate bytes following the
// opcode and pushes them as a big-endian, zero-padded word.
func makePush(n int) executionFunc {
	return func(vm *VM) Control {
		start := vm.pc + 1
		var buf [32]byte
		codeLen := uint64(len(vm.code))
		for i := 0; i < n; i++ {
			srcIdx := start + uint64(i)
			if srcIdx < codeLen {
				buf[32-n+i] = vm.code[srcIdx]
			}
		}
		if err := vm.stack.Push(Decode32(buf)); err != nil {
			return Error(err)
		}
		return Continue(1 + n)
	}
}

// makeDup returns a handler that duplicates the nth stack item from the top.
func makeDup(n int) executionFunc {
	return func(vm *VM) Control {
		if err := vm.stack.Dup(n); err != nil {
			return Error(err)
		}
		return Continue(1)
	}
}

// makeSwap returns a handler that swaps the top stack item with the one n deep.
func makeSwap(n int) executionFunc {
	return func(vm *VM) Control {
		if err := vm.stack.Swap(n); err != nil {
			return Error(err)
		}
		return Continue(1)
	}
}

func opReturn(vm *VM) Control {
	offsetW, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	sizeW, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	offset, ok := ToHostIndex(offsetW)
	if !ok {
		return Error(ErrUnsupportedOperation)
	}
	size, ok := ToHostIndex(sizeW)
	if !ok {
		return Error(ErrUnsupportedOperation)
	}
	data, err := vm.memory.Read(offset, size)
	if err != nil {
		return Error(err)
	}
	vm.returnData = data
	return Return()
}

func opRevert(vm *VM) Control {
	offsetW, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	sizeW, err := vm.stack.Pop()
	if err != nil {
		return Error(err)
	}
	offset, ok := ToHostIndex(offsetW)
	if !ok {
		return Error(ErrUnsupportedOperation)
	}
	size, ok := ToHostIndex(sizeW)
	if !ok {
		return Error(ErrUnsupportedOperation)
	}
	data, err := vm.memory.Read(offset, size)
	if err != nil {
		return Error(err)
	}
	vm.returnData = data
	return Revert()
}
