package inputwindows

import (
	"testing"

	"github.com/leandrodaf/midiplay/internal/input/keycombo"
)

func TestScanCode(t *testing.T) {
	tests := []struct {
		r    rune
		want uint16
		ok   bool
	}{
		{'a', 0x1E, true},
		{'Z', 0x2C, true},
		{'m', 0x32, true},
		{'0', 0x0B, true},
		{'1', 0x02, true},
		{'9', 0x0A, true},
		{';', 0, false},
		{'é', 0, false},
	}
	for _, tt := range tests {
		got, ok := ScanCode(tt.r)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ScanCode(%q) = %#x, %v; want %#x, %v", tt.r, got, ok, tt.want, tt.ok)
		}
	}
}

func TestScanCodesAreUnique(t *testing.T) {
	seen := make(map[uint16]rune)
	for r, code := range scanCodes {
		if other, dup := seen[code]; dup {
			t.Errorf("scan code %#x shared by %q and %q", code, r, other)
		}
		seen[code] = r
	}
	if len(scanCodes) != 36 {
		t.Errorf("Expected 36 letters and digits, got %d", len(scanCodes))
	}
}

func TestModifierScanCode(t *testing.T) {
	tests := []struct {
		m        keycombo.Modifier
		code     uint16
		extended bool
	}{
		{keycombo.Shift, 0x2A, false},
		{keycombo.Ctrl, 0x1D, false},
		{keycombo.Alt, 0x38, false},
		{keycombo.Meta, 0x5B, true},
	}
	for _, tt := range tests {
		code, ext := ModifierScanCode(tt.m)
		if code != tt.code || ext != tt.extended {
			t.Errorf("ModifierScanCode(%s) = %#x, %v; want %#x, %v", tt.m, code, ext, tt.code, tt.extended)
		}
	}
}
