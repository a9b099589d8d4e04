// Package chip8 implements the CHIP-8 virtual machine: the machine state, the
// instruction decoder, the execution engine, the 60Hz timer clock and the
// keypad latch.
//
// # Memory Layout
//
// The machine has 4KB of memory (0x000-0xFFF):
//   - 0x050-0x09F: built-in hexadecimal font, 16 glyphs of 5 bytes
//   - ProgramStart-0xFFF: program and data area
//
// The framebuffer (64x32 pixels) and the call stack (16 return addresses)
// are kept outside the addressable memory.
//
// # Execution
//
// Step fetches the big-endian instruction word at PC, advances PC by 2 and
// dispatches the decoded instruction through a two-level table (see Lookup).
// Instructions that are not part of the instruction set, and stack overflows
// or underflows, are returned as *Fault values. Running past the end of
// memory halts the machine, which is a normal termination reported as
// ErrHalted.
//
// The key wait instruction (Fx0A) does not block: it switches the machine
// into the AwaitingKey mode, in which Step does nothing until HandleKey
// observes a key press. The host loop keeps polling input and presenting
// frames meanwhile.
//
// # Quirks
//
// Historical interpreters disagree on a few instructions. Quirks holds a
// named toggle for each of them; DefaultQuirks matches the behavior of most
// modern interpreters.
package chip8
