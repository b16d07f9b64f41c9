package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// Sink plays synthesized MP3 audio. Playback honors the rate and volume of
// the request; rate stretches pacing, volume scales amplitude.
type Sink interface {
	Play(ctx context.Context, mp3Data []byte, rate, volume float64) error
}

// WriterSink decodes MP3 to 16-bit little-endian PCM and writes it to an
// io.Writer, typically a pipe into an audio device or a file. Volume is
// applied by scaling samples; rate is left to the synthesizer's prosody.
type WriterSink struct {
	w io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Play(ctx context.Context, mp3Data []byte, rate, volume float64) error {
	decoder, err := mp3.NewDecoder(bytes.NewReader(mp3Data))
	if err != nil {
		return fmt.Errorf("failed to decode mp3: %w", err)
	}

	buf := make([]byte, 4096)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := decoder.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if volume != 1.0 {
				scaleSamples(chunk, volume)
			}
			if _, werr := s.w.Write(chunk); werr != nil {
				return fmt.Errorf("failed to write audio: %w", werr)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read decoded audio: %w", err)
		}
	}
}

// scaleSamples multiplies 16-bit little-endian PCM samples in place,
// clipping at the int16 range.
func scaleSamples(pcm []byte, volume float64) {
	for i := 0; i+1 < len(pcm); i += 2 {
		sample := int16(uint16(pcm[i]) | uint16(pcm[i+1])<<8)
		scaled := float64(sample) * volume
		if scaled > 32767 {
			scaled = 32767
		} else if scaled < -32768 {
			scaled = -32768
		}
		out := int16(scaled)
		pcm[i] = byte(uint16(out))
		pcm[i+1] = byte(uint16(out) >> 8)
	}
}

// NullSink discards audio. Used when no audio device is available and in
// tests.
type NullSink struct{}

func (NullSink) Play(ctx context.Context, mp3Data []byte, rate, volume float64) error {
	return ctx.Err()
}
