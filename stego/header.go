package stego

import "fmt"

// HeaderSize is the number of geometry bytes embedded ahead of the
// secret's pixel data.
const HeaderSize = 5

const (
	maxDimension = 0xFFFF
	maxChannels  = 0xFF
)

// EncodeHeader packs the secret's dimensions into the header stored in
// front of the payload: high and low bytes of the height, high and low
// bytes of the width, then the channel count.
func EncodeHeader(height, width, channels int) ([]byte, error) {
	if height < 0 || height > maxDimension {
		return nil, fmt.Errorf("secret height %d outside addressable range 0..%d", height, maxDimension)
	}
	if width < 0 || width > maxDimension {
		return nil, fmt.Errorf("secret width %d outside addressable range 0..%d", width, maxDimension)
	}
	if channels < 0 || channels > maxChannels {
		return nil, fmt.Errorf("secret channel count %d outside addressable range 0..%d", channels, maxChannels)
	}

	return []byte{
		byte(height / 256), byte(height % 256),
		byte(width / 256), byte(width % 256),
		byte(channels),
	}, nil
}

// DecodeHeader is the inverse of EncodeHeader. The input must be
// exactly HeaderSize bytes.
func DecodeHeader(header []byte) (height, width, channels int, err error) {
	if len(header) != HeaderSize {
		return 0, 0, 0, fmt.Errorf("header must be exactly %d bytes, got %d", HeaderSize, len(header))
	}

	height = int(header[0])*256 + int(header[1])
	width = int(header[2])*256 + int(header[3])
	channels = int(header[4])
	return height, width, channels, nil
}
