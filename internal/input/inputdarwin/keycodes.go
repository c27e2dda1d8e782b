package inputdarwin

// kVK_ANSI_* virtual key codes from HIToolbox Events.h. They follow the
// physical ANSI layout, not the character order.
var keyCodes = map[rune]int{
	'a': 0x00, 'b': 0x0B, 'c': 0x08, 'd': 0x02, 'e': 0x0E, 'f': 0x03, 'g': 0x05,
	'h': 0x04, 'i': 0x22, 'j': 0x26, 'k': 0x28, 'l': 0x25, 'm': 0x2E, 'n': 0x2D,
	'o': 0x1F, 'p': 0x23, 'q': 0x0C, 'r': 0x0F, 's': 0x01, 't': 0x11, 'u': 0x20,
	'v': 0x09, 'w': 0x0D, 'x': 0x07, 'y': 0x10, 'z': 0x06,
	'0': 0x1D, '1': 0x12, '2': 0x13, '3': 0x14, '4': 0x15,
	'5': 0x17, '6': 0x16, '7': 0x1A, '8': 0x1C, '9': 0x19,
}

// KeyCode returns the virtual key code of an ASCII letter or digit.
func KeyCode(r rune) (int, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	code, ok := keyCodes[r]
	return code, ok
}
