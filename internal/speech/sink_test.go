package speech

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleSamples(t *testing.T) {
	t.Run("halves amplitude", func(t *testing.T) {
		pcm := []byte{0xE8, 0x03} // 1000
		scaleSamples(pcm, 0.5)
		assert.Equal(t, []byte{0xF4, 0x01}, pcm) // 500
	})

	t.Run("clips at int16 max", func(t *testing.T) {
		pcm := []byte{0xFF, 0x7F} // 32767
		scaleSamples(pcm, 2.0)
		assert.Equal(t, []byte{0xFF, 0x7F}, pcm)
	})

	t.Run("clips at int16 min", func(t *testing.T) {
		pcm := []byte{0x00, 0x80} // -32768
		scaleSamples(pcm, 2.0)
		assert.Equal(t, []byte{0x00, 0x80}, pcm)
	})
}

func TestNullSink(t *testing.T) {
	require.NoError(t, NullSink{}.Play(context.Background(), []byte("mp3"), 1.0, 1.0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, NullSink{}.Play(ctx, []byte("mp3"), 1.0, 1.0))
}
