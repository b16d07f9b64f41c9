package camera

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func TestEncodeFrame(t *testing.T) {
	t.Run("small frame keeps dimensions", func(t *testing.T) {
		data, err := EncodeFrame(testImage(640, 480))
		require.NoError(t, err)

		decoded, err := jpeg.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 640, decoded.Bounds().Dx())
		assert.Equal(t, 480, decoded.Bounds().Dy())
	})

	t.Run("large frame is downscaled", func(t *testing.T) {
		data, err := EncodeFrame(testImage(2560, 1440))
		require.NoError(t, err)

		decoded, err := jpeg.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 1280, decoded.Bounds().Dx())
		assert.Equal(t, 720, decoded.Bounds().Dy())
	})

	t.Run("empty frame fails", func(t *testing.T) {
		_, err := EncodeFrame(image.NewRGBA(image.Rect(0, 0, 0, 0)))
		assert.Error(t, err)
	})
}

func TestEncodeDataURL(t *testing.T) {
	url := EncodeDataURL([]byte{0xFF, 0xD8, 0xFF})
	assert.True(t, strings.HasPrefix(url, "data:image/jpeg;base64,"))
}

func TestStillSource(t *testing.T) {
	a := testImage(2, 2)
	b := testImage(4, 4)
	source := NewStillSource(a, b)

	img, err := source.Frame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a, img)

	img, err = source.Frame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, b, img)

	// Last image repeats
	img, err = source.Frame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, b, img)
}

func TestStillSourceEmpty(t *testing.T) {
	_, err := NewStillSource().Frame(context.Background())
	assert.ErrorIs(t, err, ErrCameraUnavailable)
}
