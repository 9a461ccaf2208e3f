package task

import "reflect"

const (
	regArg = 0  // first argument register
	regSP  = 13 // stack pointer
	regLR  = 14 // link register
	regPC  = 15 // program counter

	// exceptionReturn mirrors the Cortex-M "return to thread mode" value the
	// initial frame would carry on real hardware.
	exceptionReturn = 0xFFFFFFFD
)

// Context is the saved execution context handle: a simulated register file
// plus the stack pointer. It is initialised once at creation and is
// overwritten only by context-switch events driven by the platform switcher;
// the kernel itself treats it as opaque bookkeeping.
type Context struct {
	Registers [16]uint64
	SP        uint64
}

// NewContext builds the initial saved context for a task: the program counter
// at the entry point, the stack pointer at the top of the owned stack region
// and the first argument register referencing the entry argument.
func NewContext(entry Entry, stackSize int) Context {
	var ctx Context
	ctx.SP = uint64(stackSize)
	ctx.Registers[regSP] = ctx.SP
	ctx.Registers[regLR] = exceptionReturn
	if entry != nil {
		ctx.Registers[regPC] = uint64(reflect.ValueOf(entry).Pointer())
	}
	ctx.Registers[regArg] = 0
	return ctx
}
