package disasm

import (
	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// Tracer returns a machine trace function that logs every executed
// instruction at debug level.
func Tracer(logger *log.Logger) chip8.TraceFunc {
	return func(pc uint16, in chip8.Instruction) {
		logger.Debug("Executing instruction",
			log.Hex("pc", pc),
			log.Hex("opcode", in.Word),
			log.String("instruction", FormatInstruction(in.Word)))
	}
}
