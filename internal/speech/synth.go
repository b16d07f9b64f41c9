package speech

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/wujunwei928/edge-tts-go/edge_tts"
)

// Synthesizer converts text into MP3 audio using a named voice.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, voice string) ([]byte, error)
}

// EdgeSynthesizer synthesizes speech through the Microsoft Edge TTS
// service. Synthesis happens remotely; no API key is required.
type EdgeSynthesizer struct{}

func NewEdgeSynthesizer() *EdgeSynthesizer {
	return &EdgeSynthesizer{}
}

func (s *EdgeSynthesizer) Synthesize(ctx context.Context, text string, voice string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("no text to synthesize")
	}

	communicate, err := edge_tts.NewCommunicate(text, edge_tts.SetVoice(voice))
	if err != nil {
		return nil, fmt.Errorf("failed to create Edge TTS communicator: %w", err)
	}

	// The edge client has no context plumbing, so honor cancellation by
	// running the synthesis in a goroutine and abandoning the result.
	type output struct {
		data []byte
		err  error
	}
	done := make(chan output, 1)
	go func() {
		data, err := communicate.Stream()
		done <- output{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-done:
		if out.err != nil {
			return nil, fmt.Errorf("Edge TTS synthesis failed: %w", out.err)
		}
		log.Debug().Str("voice", voice).Int("bytes", len(out.data)).Msg("synthesized speech")
		return out.data, nil
	}
}
