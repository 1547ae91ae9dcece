package bytecode

import (
	"bytes"
	"testing"

	"github.com/devalang/deva/object"
)

func TestFileRoundTrip(t *testing.T) {
	lines := NewLineMap()
	lines.Add(1, 0)
	lines.Add(2, 6)

	instrs := Instructions{}
	instrs = append(instrs, Make(OpPush, 0)...)
	instrs = append(instrs, Make(OpPush, 1)...)
	instrs = append(instrs, Make(OpAdd)...)
	instrs = append(instrs, Make(OpReturn)...)

	in := &File{
		Constants: []object.Object{
			object.NewNumber(41),
			object.NewString("hello"),
		},
		Functions: []Function{
			{
				Name:        "main",
				Filename:    "test.dv",
				FirstLine:   1,
				NumArgs:     0,
				DefaultArgs: []uint32{},
				NumLocals:   2,
				Names:       []string{"a", "b"},
				CodeOffset:  0,
			},
		},
		Code: NewCode(instrs, 2, lines),
	}

	var buf bytes.Buffer
	if err := WriteFile(&buf, in); err != nil {
		t.Fatalf("WriteFile: %s", err)
	}

	out, err := ReadFile(&buf)
	if err != nil {
		t.Fatalf("ReadFile: %s", err)
	}

	if len(out.Constants) != 2 {
		t.Fatalf("wrong constant count: got=%d", len(out.Constants))
	}
	if out.Constants[0].Kind != object.KindNumber || out.Constants[0].Num != 41 {
		t.Errorf("constant 0 mismatch: %+v", out.Constants[0])
	}
	if out.Constants[1].Kind != object.KindString || out.Constants[1].Str != "hello" {
		t.Errorf("constant 1 mismatch: %+v", out.Constants[1])
	}

	if len(out.Functions) != 1 {
		t.Fatalf("wrong function count: got=%d", len(out.Functions))
	}
	fn := out.Functions[0]
	if fn.Name != "main" || fn.Filename != "test.dv" || fn.NumLocals != 2 {
		t.Errorf("function mismatch: %+v", fn)
	}
	if len(fn.Names) != 2 || fn.Names[0] != "a" || fn.Names[1] != "b" {
		t.Errorf("function names mismatch: %+v", fn.Names)
	}

	if !bytes.Equal(out.Code.Instructions, instrs) {
		t.Errorf("instructions mismatch: want=%q got=%q", instrs, out.Code.Instructions)
	}
	if out.Code.NumConstants != 2 {
		t.Errorf("wrong NumConstants: got=%d", out.Code.NumConstants)
	}

	line, ok := out.Code.Lines.FindLine(6)
	if !ok || line != 2 {
		t.Errorf("line map mismatch: got=(%d,%v)", line, ok)
	}
}

func TestFileRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(make([]byte, 16))

	if _, err := ReadFile(&buf); err == nil {
		t.Errorf("expected error reading file with zeroed header")
	}
}
