package codec

// nibbles maps an ASCII byte to its hex value. Bytes that are not hex digits map
// to 0 so a corrupted window still decodes to a record instead of failing.
var nibbles = func() (t [256]byte) {
	for c := '0'; c <= '9'; c++ {
		t[c] = byte(c - '0')
	}
	for c := 'a'; c <= 'f'; c++ {
		t[c] = byte(c-'a') + 10
	}
	for c := 'A'; c <= 'F'; c++ {
		t[c] = byte(c-'A') + 10
	}
	return t
}()

// isHex marks the bytes accepted by the frame decoder's input filter.
var isHex = func() (t [256]bool) {
	for _, s := range []string{"0123456789", "abcdef", "ABCDEF"} {
		for i := 0; i < len(s); i++ {
			t[s[i]] = true
		}
	}
	return t
}()

// IsHexDigit reports whether c is one of 0-9, a-f, A-F.
func IsHexDigit(c byte) bool {
	return isHex[c]
}

// HexByte decodes the two hex characters hi, lo.
func HexByte(hi, lo byte) byte {
	return nibbles[hi]<<4 | nibbles[lo]
}

// decodeHex fills dst from the first 2*len(dst) characters of src.
func decodeHex(dst []byte, src []byte) {
	for i := range dst {
		dst[i] = nibbles[src[2*i]]<<4 | nibbles[src[2*i+1]]
	}
}
