package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrStackOverflow is returned by CALL when all 16 stack slots are in use.
	ErrStackOverflow = errors.New("call stack overflow")
	// ErrStackUnderflow is returned by RET with an empty stack.
	ErrStackUnderflow = errors.New("call stack underflow")
)

// ExecError wraps a failure with the address and word of the instruction
// that caused it.
type ExecError struct {
	PC          uint16
	Instruction uint16
	Err         error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("instruction 0x%04X at 0x%03X: %v", e.Instruction, e.PC, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
