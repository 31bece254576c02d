package stego

// BitsPerByte is the expansion factor between payload bytes and
// carrier elements: one carrier element stores one payload bit.
const BitsPerByte = 8

// ExpandBits spreads every payload byte across eight output elements,
// least significant bit first: output element 8*i+j holds bit j of
// payload byte i.
func ExpandBits(payload []byte) []byte {
	bits := make([]byte, len(payload)*BitsPerByte)
	for i, b := range payload {
		for j := 0; j < BitsPerByte; j++ {
			bits[i*BitsPerByte+j] = (b >> j) & 1
		}
	}
	return bits
}

// CompactBits rebuilds payload bytes from carrier elements, reading
// only the least significant bit of each element. The element count
// must be a multiple of BitsPerByte; callers slice accordingly.
func CompactBits(elements []byte) []byte {
	payload := make([]byte, len(elements)/BitsPerByte)
	for i := range payload {
		var b byte
		for j := 0; j < BitsPerByte; j++ {
			b += (elements[i*BitsPerByte+j] & 1) << j
		}
		payload[i] = b
	}
	return payload
}
