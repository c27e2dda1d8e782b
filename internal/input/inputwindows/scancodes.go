package inputwindows

import "github.com/leandrodaf/midiplay/internal/input/keycombo"

// Hardware scan codes (set 1). Games reading DirectInput only see keys sent
// by scan code, not by virtual key.
var scanCodes = map[rune]uint16{
	'a': 0x1E, 'b': 0x30, 'c': 0x2E, 'd': 0x20, 'e': 0x12, 'f': 0x21, 'g': 0x22,
	'h': 0x23, 'i': 0x17, 'j': 0x24, 'k': 0x25, 'l': 0x26, 'm': 0x32, 'n': 0x31,
	'o': 0x18, 'p': 0x19, 'q': 0x10, 'r': 0x13, 's': 0x1F, 't': 0x14, 'u': 0x16,
	'v': 0x2F, 'w': 0x11, 'x': 0x2D, 'y': 0x15, 'z': 0x2C,
	'0': 0x0B, '1': 0x02, '2': 0x03, '3': 0x04, '4': 0x05,
	'5': 0x06, '6': 0x07, '7': 0x08, '8': 0x09, '9': 0x0A,
}

// ScanCode returns the scan code of an ASCII letter or digit.
func ScanCode(r rune) (uint16, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	code, ok := scanCodes[r]
	return code, ok
}

// ModifierScanCode returns the left-hand scan code of m and whether it must
// be sent with the extended-key flag.
func ModifierScanCode(m keycombo.Modifier) (code uint16, extended bool) {
	switch m {
	case keycombo.Shift:
		return 0x2A, false
	case keycombo.Ctrl:
		return 0x1D, false
	case keycombo.Alt:
		return 0x38, false
	}
	return 0x5B, true
}
