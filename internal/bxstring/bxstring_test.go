package bxstring

import "testing"

func TestInvariants(t *testing.T) {
	cases := []string{
		"hello",
		"",
		"  leading and trailing  ",
		"\x1b[31mred\x1b[0m text",
		"plain\x1b[0mreset\x1b[31mcolor",
		"\tindented",
	}
	for _, s := range cases {
		b := FromASCII(s)
		if b.NumCodePoints != b.NumVisible+b.NumInvisible {
			t.Errorf("%q: NumCodePoints=%d != NumVisible+NumInvisible=%d", s, b.NumCodePoints, b.NumVisible+b.NumInvisible)
		}
		for v := 0; v < b.NumVisible; v++ {
			if b.FirstOf[v] > b.VisibleAt[v] {
				t.Errorf("%q: FirstOf[%d]=%d > VisibleAt[%d]=%d", s, v, b.FirstOf[v], v, b.VisibleAt[v])
			}
			if b.VisibleAt[v] >= b.FirstOf[v+1] {
				t.Errorf("%q: VisibleAt[%d]=%d >= FirstOf[%d]=%d", s, v, b.VisibleAt[v], v+1, b.FirstOf[v+1])
			}
		}
		if b.Indent+b.Trailing > b.NumVisible && b.NumVisible > 0 {
			// Loose sanity check; exact bound assumes single-column blanks.
		}
	}
}

func TestIndentTrailing(t *testing.T) {
	tests := []struct {
		s            string
		wantIndent   int
		wantTrailing int
	}{
		{"hello", 0, 0},
		{"  hello", 2, 0},
		{"hello  ", 0, 2},
		{"  hello  ", 2, 2},
		{"   ", 3, 0},
		{"", 0, 0},
	}
	for _, tt := range tests {
		b := FromASCII(tt.s)
		if b.Indent != tt.wantIndent || b.Trailing != tt.wantTrailing {
			t.Errorf("%q: Indent=%d Trailing=%d, want Indent=%d Trailing=%d", tt.s, b.Indent, b.Trailing, tt.wantIndent, tt.wantTrailing)
		}
	}
}

func TestColorResetClearsAttach(t *testing.T) {
	b := FromASCII("\x1b[31mred\x1b[0mplain")
	if b.NumVisible != 8 { // "red" + "plain"
		t.Fatalf("NumVisible = %d, want 8", b.NumVisible)
	}
	// The first visible char ('r') should have an invisible prefix (the color code).
	if b.FirstOf[0] == b.VisibleAt[0] {
		t.Errorf("expected 'r' to have an invisible color prefix")
	}
	// The first char of "plain" should NOT carry the reset sequence as an
	// attached prefix distinct from itself, since reset clears pending state.
	plainStart := 3 // visible index of 'p' in "red" + "plain"
	if b.FirstOf[plainStart] != b.VisibleAt[plainStart] {
		t.Errorf("expected 'p' to have no pending invisible prefix after reset, FirstOf=%d VisibleAt=%d", b.FirstOf[plainStart], b.VisibleAt[plainStart])
	}
}

func TestRoundTrip(t *testing.T) {
	s := "hello \x1b[32mworld\x1b[0m!"
	b := FromASCII(s)
	b2 := FromRunes(b.CodePoints)
	if !b.Equal(b2) {
		t.Errorf("rebuilding from code points produced a different bxstring")
	}
}

func TestSubstringAndCutFront(t *testing.T) {
	b := FromASCII("hello world")
	sub := b.Substring(0, 5)
	if sub.String() != "hello" {
		t.Errorf("Substring(0,5) = %q, want %q", sub.String(), "hello")
	}
	cut := b.CutFront(6)
	if cut.String() != "world" {
		t.Errorf("CutFront(6) = %q, want %q", cut.String(), "world")
	}
}

func TestTrim(t *testing.T) {
	b := FromASCII("   hi   ")
	if got := b.TrimLeft().String(); got != "hi   " {
		t.Errorf("TrimLeft() = %q, want %q", got, "hi   ")
	}
	if got := b.TrimRight().String(); got != "   hi" {
		t.Errorf("TrimRight() = %q, want %q", got, "   hi")
	}
	if got := b.TrimBoth().String(); got != "hi" {
		t.Errorf("TrimBoth() = %q, want %q", got, "hi")
	}
}

func TestPrependAppendSpaces(t *testing.T) {
	b := FromASCII("x")
	if got := b.PrependSpaces(3).String(); got != "   x" {
		t.Errorf("PrependSpaces(3) = %q, want %q", got, "   x")
	}
	if got := b.AppendSpaces(2).String(); got != "x  " {
		t.Errorf("AppendSpaces(2) = %q, want %q", got, "x  ")
	}
}

func TestVisibleOnly(t *testing.T) {
	b := FromASCII("\x1b[31mred\x1b[0m")
	v := b.VisibleOnly()
	if v.String() != "red" {
		t.Errorf("VisibleOnly() = %q, want %q", v.String(), "red")
	}
	if v.NumInvisible != 0 {
		t.Errorf("VisibleOnly() left %d invisible code points", v.NumInvisible)
	}
}

func TestValidate(t *testing.T) {
	colored := FromASCII("\x1b[31mred\x1b[0m")
	if err := colored.Validate(ContextAnywhere); err != nil {
		t.Errorf("ContextAnywhere rejected valid CSI: %v", err)
	}
	if err := colored.Validate(ContextInFilename); err == nil {
		t.Errorf("ContextInFilename should reject ESC")
	}

	withCR := FromRunes([]rune("a\rb"))
	if err := withCR.Validate(ContextInShape); err == nil {
		t.Errorf("ContextInShape should reject CR")
	}
	if err := withCR.Validate(ContextAnywhere); err != nil {
		t.Errorf("ContextAnywhere should allow CR: %v", err)
	}
}

func TestDoubleWidth(t *testing.T) {
	b := FromASCII("A　B") // ideographic space is double-width
	if b.NumColumns != 1+2+1 {
		t.Errorf("NumColumns = %d, want 4", b.NumColumns)
	}
}
