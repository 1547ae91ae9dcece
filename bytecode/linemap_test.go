package bytecode

import "testing"

func TestLineMapFindLine(t *testing.T) {
	lm := NewLineMap()
	lm.Add(1, 0)
	lm.Add(2, 6)
	lm.Add(4, 11)

	tests := []struct {
		addr     uint32
		wantLine uint32
		wantOk   bool
	}{
		{0, 1, true},
		{3, 1, true},
		{6, 2, true},
		{10, 2, true},
		{11, 4, true},
		{100, 4, true},
	}

	for _, tt := range tests {
		line, ok := lm.FindLine(tt.addr)
		if ok != tt.wantOk || line != tt.wantLine {
			t.Errorf("FindLine(%d) = (%d, %v), want (%d, %v)", tt.addr, line, ok, tt.wantLine, tt.wantOk)
		}
	}
}

func TestLineMapFindAddress(t *testing.T) {
	lm := NewLineMap()
	lm.Add(1, 0)
	lm.Add(2, 6)

	addr, ok := lm.FindAddress(2)
	if !ok || addr != 6 {
		t.Errorf("FindAddress(2) = (%d, %v), want (6, true)", addr, ok)
	}

	if _, ok := lm.FindAddress(99); ok {
		t.Errorf("FindAddress(99) unexpectedly found")
	}
}

func TestEmptyLineMap(t *testing.T) {
	lm := NewLineMap()
	if _, ok := lm.FindLine(0); ok {
		t.Errorf("FindLine on empty map should fail")
	}
}
