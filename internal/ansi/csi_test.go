package ansi

import "testing"

func TestScanCSI(t *testing.T) {
	tests := []struct {
		name    string
		runes   []rune
		i       int
		wantEnd int
		wantOK  bool
	}{
		{"simple color", []rune("\x1b[31mx"), 0, 5, true},
		{"reset", []rune("\x1b[0m"), 0, 4, true},
		{"no params", []rune("\x1b[m"), 0, 3, true},
		{"paren introducer", []rune("\x1b(0x"), 0, 4, true},
		{"not escape", []rune("abc"), 0, 1, false},
		{"bad introducer", []rune("\x1bXm"), 0, 1, false},
		{"unterminated", []rune("\x1b[31"), 0, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, ok := ScanCSI(tt.runes, tt.i)
			if end != tt.wantEnd || ok != tt.wantOK {
				t.Errorf("ScanCSI(%q, %d) = (%d, %v), want (%d, %v)", string(tt.runes), tt.i, end, ok, tt.wantEnd, tt.wantOK)
			}
		})
	}
}

func TestIsReset(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want bool
	}{
		{"ESC[0m", "\x1b[0m", true},
		{"ESC[m", "\x1b[m", true},
		{"ESC[10m", "\x1b[10m", true},
		{"ESC[39m", "\x1b[39m", true},
		{"ESC[49m", "\x1b[49m", true},
		{"ESC[59m", "\x1b[59m", true},
		{"ESC[75m", "\x1b[75m", true},
		{"ESC(0m", "\x1b(0m", true},
		{"color, not reset", "\x1b[31m", false},
		{"bold, not reset", "\x1b[1m", false},
		{"cursor move, not reset", "\x1b[2J", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runes := []rune(tt.s)
			end, ok := ScanCSI(runes, 0)
			if !ok {
				t.Fatalf("ScanCSI(%q) failed to scan", tt.s)
			}
			got := IsReset(runes, 0, end)
			if got != tt.want {
				t.Errorf("IsReset(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

func TestStrip(t *testing.T) {
	got := Strip("\x1b[31mred\x1b[0m text")
	want := "red text"
	if got != want {
		t.Errorf("Strip() = %q, want %q", got, want)
	}
}
