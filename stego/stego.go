// Package stego implements the LSB bit-plane codec that hides one
// raster image inside another. It is a pure in-memory library: image
// file decoding and encoding are handled by collaborators, the codec
// only ever sees flattened 8-bit element buffers.
package stego

import "fmt"

// Raster is an owned, flattened image buffer of unsigned 8-bit
// elements together with its geometry. The element count always
// equals Height*Width*Channels; grayscale images carry one channel.
type Raster struct {
	Data     []byte
	Height   int
	Width    int
	Channels int
}

// Size returns the element count implied by the raster's geometry.
func (r *Raster) Size() int {
	return r.Height * r.Width * r.Channels
}

// CheckCapacity validates that the carrier can hold payloadLen bytes
// across its bit plane. It never mutates anything, so a failed embed
// leaves the carrier untouched.
func CheckCapacity(carrier *Raster, payloadLen int) error {
	required := payloadLen * BitsPerByte
	if len(carrier.Data) < required {
		return &SecretTooLargeError{Required: required, Available: len(carrier.Data)}
	}
	return nil
}

// Embed hides secret in the least significant bits of a copy of
// carrier and returns the copy with the carrier's geometry. Only the
// LSB of the first 8*(HeaderSize+len(secret.Data)) elements changes;
// every other bit of the carrier is preserved.
func Embed(carrier, secret *Raster) (*Raster, error) {
	header, err := EncodeHeader(secret.Height, secret.Width, secret.Channels)
	if err != nil {
		return nil, err
	}
	if len(secret.Data) != secret.Size() {
		return nil, fmt.Errorf("secret buffer has %d elements, geometry %dx%dx%d implies %d",
			len(secret.Data), secret.Height, secret.Width, secret.Channels, secret.Size())
	}

	payload := make([]byte, 0, HeaderSize+len(secret.Data))
	payload = append(payload, header...)
	payload = append(payload, secret.Data...)

	if err := CheckCapacity(carrier, len(payload)); err != nil {
		return nil, err
	}

	out := &Raster{
		Data:     make([]byte, len(carrier.Data)),
		Height:   carrier.Height,
		Width:    carrier.Width,
		Channels: carrier.Channels,
	}
	copy(out.Data, carrier.Data)

	for i, bit := range ExpandBits(payload) {
		out.Data[i] = out.Data[i]&0xFE | bit
	}
	return out, nil
}

// Extract reads the bit plane of img, decodes the geometry header and
// reconstructs the hidden secret. Headers whose declared shape is
// empty or cannot fit inside img are reported as ErrNoSecret: random
// low bits from an image that was never embedded into almost always
// land here rather than producing a plausible payload.
func Extract(img *Raster) (*Raster, error) {
	headerElements := HeaderSize * BitsPerByte
	if len(img.Data) < headerElements {
		return nil, &NoSecretDetectedError{Reason: "image too small to hold a header"}
	}

	height, width, channels, err := DecodeHeader(CompactBits(img.Data[:headerElements]))
	if err != nil {
		return nil, err
	}

	if height == 0 || width == 0 || channels == 0 {
		return nil, &NoSecretDetectedError{
			Reason: fmt.Sprintf("header declares empty secret geometry %dx%dx%d", height, width, channels),
		}
	}

	// The shape product stays well inside int64 even at the header
	// maxima (65535*65535*255), so the size arithmetic cannot wrap.
	size := int64(height) * int64(width) * int64(channels)
	required := (int64(HeaderSize) + size) * BitsPerByte
	if required > int64(len(img.Data)) {
		return nil, &NoSecretDetectedError{
			Reason: fmt.Sprintf("declared %dx%dx%d secret needs %d elements, image has %d",
				height, width, channels, required, len(img.Data)),
		}
	}

	return &Raster{
		Data:     CompactBits(img.Data[headerElements : headerElements+int(size)*BitsPerByte]),
		Height:   height,
		Width:    width,
		Channels: channels,
	}, nil
}
