// Package bytecode defines the deva instruction set and the compiled
// `.dvc` module file format: the Module and Code types from §3/§4.E, and
// the bit-exact binary layout from §6.
//
// Grounded on the teacher's `code/code.go` for the `Definition`/`Make`/
// `ReadOperands`/`Instructions.String` idiom (a map from opcode to operand
// widths, a generic encoder/decoder over it), generalized from that
// package's 1-and-2-byte operand widths to the uniform 4-byte (dword)
// operand width every opcode in this instruction set uses — spec.md
// requires "fixed operand widths per opcode", and using one width for
// every operand in every opcode keeps the dispatch loop's instruction-
// pointer arithmetic a single formula instead of a per-opcode table.
package bytecode

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Instructions is a raw byte-encoded instruction stream.
type Instructions []byte

// Opcode is a single bytecode instruction, one byte wide. The ordering
// matches the original deva `enum Opcode` (`opcodes.h`) exactly, so that a
// numeric opcode dump is directly comparable against the source project's.
type Opcode byte

// The deva instruction set (§4.E).
const (
	OpPop Opcode = iota
	OpPush
	OpLoad
	OpStore
	OpDefun
	OpDefArg
	OpDup
	OpNewMap
	OpNewVec
	OpTblLoad
	OpTblStore
	OpSwap
	OpLineNum
	OpJmp
	OpJmpf
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpOr
	OpAnd
	OpNeg
	OpNot
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpCall
	OpReturn
	OpEnter
	OpLeave
	OpNop
	OpHalt
	OpNewClass
	OpNewInstance
	OpEndF
	OpRoll
)

// operandWidth is the single operand width (in bytes) used for every
// opcode operand in this instruction set.
const operandWidth = 4

// Definition names an opcode and how many operands it takes.
type Definition struct {
	Name         string
	NumOperands int
}

var definitions = map[Opcode]*Definition{
	OpPop:         {"pop", 0},
	OpPush:        {"push", 1},
	OpLoad:        {"load", 1},
	OpStore:       {"store", 1},
	OpDefun:       {"defun", 1},
	OpDefArg:      {"defarg", 1},
	OpDup:         {"dup", 1},
	OpNewMap:      {"new_map", 0},
	OpNewVec:      {"new_vec", 0},
	OpTblLoad:     {"tbl_load", 0},
	OpTblStore:    {"tbl_store", 0},
	OpSwap:        {"swap", 0},
	OpLineNum:     {"line_num", 1},
	OpJmp:         {"jmp", 1},
	OpJmpf:        {"jmpf", 1},
	OpEq:          {"eq", 0},
	OpNeq:         {"neq", 0},
	OpLt:          {"lt", 0},
	OpLte:         {"lte", 0},
	OpGt:          {"gt", 0},
	OpGte:         {"gte", 0},
	OpOr:          {"or", 0},
	OpAnd:         {"and", 0},
	OpNeg:         {"neg", 0},
	OpNot:         {"not", 0},
	OpAdd:         {"add", 0},
	OpSub:         {"sub", 0},
	OpMul:         {"mul", 0},
	OpDiv:         {"div", 0},
	OpMod:         {"mod", 0},
	OpCall:        {"call", 1},
	OpReturn:      {"return", 0},
	OpEnter:       {"enter", 0},
	OpLeave:       {"leave", 0},
	OpNop:         {"nop", 0},
	OpHalt:        {"halt", 1},
	OpNewClass:    {"new_class", 0},
	OpNewInstance: {"new_instance", 0},
	OpEndF:        {"endf", 0},
	OpRoll:        {"roll", 1},
}

// Lookup returns the Definition for op.
func Lookup(op byte) (*Definition, error) {
	def, ok := definitions[Opcode(op)]
	if !ok {
		return nil, fmt.Errorf("bytecode: opcode %d undefined", op)
	}
	return def, nil
}

// Width returns the total instruction width (opcode byte plus operands)
// for op.
func Width(op Opcode) int {
	def, ok := definitions[op]
	if !ok {
		return 1
	}
	return 1 + def.NumOperands*operandWidth
}

// Make encodes an instruction from an opcode and its operands.
func Make(op Opcode, operands ...int) []byte {
	def, ok := definitions[op]
	if !ok {
		return []byte{}
	}
	instr := make([]byte, 1+def.NumOperands*operandWidth)
	instr[0] = byte(op)
	offset := 1
	for i := 0; i < def.NumOperands; i++ {
		var v uint32
		if i < len(operands) {
			v = uint32(operands[i])
		}
		binary.LittleEndian.PutUint32(instr[offset:], v)
		offset += operandWidth
	}
	return instr
}

// ReadOperands decodes the operands following an opcode, returning them
// and the number of bytes consumed.
func ReadOperands(def *Definition, ins Instructions) ([]int, int) {
	operands := make([]int, def.NumOperands)
	offset := 0
	for i := 0; i < def.NumOperands; i++ {
		operands[i] = int(ReadUint32(ins[offset:]))
		offset += operandWidth
	}
	return operands, offset
}

// ReadUint32 decodes the first four bytes of ins as a little-endian
// uint32.
func ReadUint32(ins Instructions) uint32 { return binary.LittleEndian.Uint32(ins) }

// String renders a disassembly of the instruction stream, one instruction
// per line, in the teacher's `%04d OpName operands` format.
func (ins Instructions) String() string {
	var out strings.Builder
	i := 0
	for i < len(ins) {
		def, err := Lookup(ins[i])
		if err != nil {
			fmt.Fprintf(&out, "ERROR: %s\n", err)
			i++
			continue
		}
		operands, read := ReadOperands(def, ins[i+1:])
		fmt.Fprintf(&out, "%04d %s\n", i, fmtInstruction(def, operands))
		i += 1 + read
	}
	return out.String()
}

func fmtInstruction(def *Definition, operands []int) string {
	switch len(operands) {
	case 0:
		return def.Name
	case 1:
		return fmt.Sprintf("%s %d", def.Name, operands[0])
	default:
		parts := make([]string, len(operands))
		for i, o := range operands {
			parts[i] = fmt.Sprintf("%d", o)
		}
		return def.Name + " " + strings.Join(parts, " ")
	}
}
