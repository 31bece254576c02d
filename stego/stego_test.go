package stego

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// patternRaster builds a raster whose elements follow a deterministic
// byte pattern so buffer corruption shows up in comparisons.
func patternRaster(height, width, channels int) *Raster {
	data := make([]byte, height*width*channels)
	for i := range data {
		data[i] = byte(i*31 + 7)
	}
	return &Raster{Data: data, Height: height, Width: width, Channels: channels}
}

func TestEmbedExtractRoundTrip(t *testing.T) {
	carrier := patternRaster(100, 100, 3) // 30000 elements
	secret := patternRaster(10, 10, 1)    // 100 bytes, payload 105, needs 840

	stegoImage, err := Embed(carrier, secret)
	require.NoError(t, err)
	assert.Equal(t, carrier.Height, stegoImage.Height)
	assert.Equal(t, carrier.Width, stegoImage.Width)
	assert.Equal(t, carrier.Channels, stegoImage.Channels)

	recovered, err := Extract(stegoImage)
	require.NoError(t, err)
	assert.Equal(t, secret.Height, recovered.Height)
	assert.Equal(t, secret.Width, recovered.Width)
	assert.Equal(t, secret.Channels, recovered.Channels)
	assert.Equal(t, secret.Data, recovered.Data)
}

func TestEmbedMultiChannelRoundTrip(t *testing.T) {
	carrier := patternRaster(64, 64, 4)
	secret := patternRaster(7, 9, 4)

	stegoImage, err := Embed(carrier, secret)
	require.NoError(t, err)

	recovered, err := Extract(stegoImage)
	require.NoError(t, err)
	assert.Equal(t, secret, recovered)
}

func TestEmbedTouchesOnlyLSBOfPrefix(t *testing.T) {
	carrier := patternRaster(100, 100, 3)
	secret := patternRaster(10, 10, 1)

	stegoImage, err := Embed(carrier, secret)
	require.NoError(t, err)

	touched := (HeaderSize + secret.Size()) * BitsPerByte
	for i := range stegoImage.Data {
		if i < touched {
			assert.Equal(t, carrier.Data[i]&0xFE, stegoImage.Data[i]&0xFE,
				"high bits changed at element %d", i)
		} else {
			assert.Equal(t, carrier.Data[i], stegoImage.Data[i],
				"element %d beyond the payload changed", i)
		}
	}
}

func TestEmbedDoesNotMutateCarrier(t *testing.T) {
	carrier := patternRaster(50, 50, 3)
	original := append([]byte(nil), carrier.Data...)
	secret := patternRaster(5, 5, 1)

	_, err := Embed(carrier, secret)
	require.NoError(t, err)
	assert.Equal(t, original, carrier.Data)
}

func TestEmbedCapacityBoundary(t *testing.T) {
	secret := patternRaster(10, 10, 1)
	required := (HeaderSize + secret.Size()) * BitsPerByte // 840

	exact := patternRaster(required, 1, 1)
	_, err := Embed(exact, secret)
	assert.NoError(t, err)

	short := patternRaster(required-1, 1, 1)
	_, err = Embed(short, secret)
	var tooLarge *SecretTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, required, tooLarge.Required)
	assert.Equal(t, required-1, tooLarge.Available)
}

func TestEmbedRejectsOversizedSecretGeometry(t *testing.T) {
	carrier := patternRaster(100, 100, 3)
	secret := &Raster{Data: []byte{1}, Height: 70000, Width: 1, Channels: 1}

	_, err := Embed(carrier, secret)
	assert.Error(t, err)
}

func TestEmbedRejectsInconsistentSecretBuffer(t *testing.T) {
	carrier := patternRaster(100, 100, 3)
	secret := &Raster{Data: make([]byte, 99), Height: 10, Width: 10, Channels: 1}

	_, err := Embed(carrier, secret)
	assert.Error(t, err)
}

func TestExtractFromNonEmbeddedImage(t *testing.T) {
	// All-ones LSBs decode to the 65535x65535x255 shape, which cannot
	// possibly fit in this image.
	img := &Raster{Data: make([]byte, 3000), Height: 10, Width: 100, Channels: 3}
	for i := range img.Data {
		img.Data[i] = 0xFF
	}

	_, err := Extract(img)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestExtractTinyImage(t *testing.T) {
	img := &Raster{Data: make([]byte, 39), Height: 39, Width: 1, Channels: 1}
	_, err := Extract(img)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestExtractZeroChannelHeader(t *testing.T) {
	// A header declaring zero channels is treated as malformed rather
	// than as a degenerate empty secret.
	carrier := patternRaster(100, 100, 3)
	header, err := EncodeHeader(4, 4, 0)
	require.NoError(t, err)

	img := &Raster{Data: append([]byte(nil), carrier.Data...), Height: 100, Width: 100, Channels: 3}
	for i, bit := range ExpandBits(header) {
		img.Data[i] = img.Data[i]&0xFE | bit
	}

	_, err = Extract(img)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestExtractGrayscaleHeaderChannels(t *testing.T) {
	carrier := patternRaster(100, 100, 3)
	secret := patternRaster(10, 10, 1)

	stegoImage, err := Embed(carrier, secret)
	require.NoError(t, err)

	_, _, c, err := DecodeHeader(CompactBits(stegoImage.Data[:HeaderSize*BitsPerByte]))
	require.NoError(t, err)
	assert.Equal(t, 1, c)
}

func TestCheckCapacity(t *testing.T) {
	carrier := patternRaster(10, 10, 1) // 100 elements

	// 12 payload bytes need 96 elements, 13 need 104
	assert.NoError(t, CheckCapacity(carrier, 12))

	var tooLarge *SecretTooLargeError
	assert.ErrorAs(t, CheckCapacity(carrier, 13), &tooLarge)
}
