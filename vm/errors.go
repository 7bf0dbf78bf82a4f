package vm

import "errors"

// Exhaustive fault taxonomy a handler may raise. All other failures are
// programmer error (nil pointer, index out of range on an internal
// invariant) and are allowed to panic rather than be folded in here.
var (
	// ErrStackOverflow is returned when a push is attempted on a full (1024 item) stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when pop/peek/swap/dup is attempted without sufficient depth.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrInvalidOpcode is returned for a byte not present in the opcode table, or the explicit INVALID (0xfe) instruction.
	ErrInvalidOpcode = errors.New("invalid opcode")
	// ErrInvalidJump is returned when a JUMP/JUMPI target is not in the pre-scanned valid-jump set.
	ErrInvalidJump = errors.New("invalid jump destination")
	// ErrUnsupportedOperation is returned when a popped operand used as a host index exceeds the host's index range.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrStepLimitExceeded is returned when a run executes more than MaxSteps
	// instructions without halting. This core has no gas model, so an
	// unbounded loop would otherwise never terminate.
	ErrStepLimitExceeded = errors.New("step limit exceeded")
)
