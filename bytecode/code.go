package bytecode

// Code is the immutable compiled form of a module's instruction stream,
// grounded on `inc/code.h`: the raw instructions, how many entries the
// constant pool has, and the line map built alongside it.
type Code struct {
	Instructions Instructions
	NumConstants int
	Lines        *LineMap
}

// NewCode wraps an instruction stream with its constant count and line
// map.
func NewCode(ins Instructions, numConstants int, lines *LineMap) *Code {
	if lines == nil {
		lines = NewLineMap()
	}
	return &Code{Instructions: ins, NumConstants: numConstants, Lines: lines}
}

// Function describes one compiled function's entry point and signature,
// grounded on the `.func` section layout in `inc/fileformat.h`.
type Function struct {
	Name        string
	Filename    string
	FirstLine   uint32
	ClassName   string
	NumArgs     uint32
	DefaultArgs []uint32 // constant-pool indices, one per defaultable arg
	NumLocals   uint32
	Names       []string // local variable names, by slot index
	CodeOffset  uint32   // byte offset into the shared code section
}

// IsMethod reports whether this function was declared inside a class body.
func (f *Function) IsMethod() bool { return f.ClassName != "" }
