// Package camera provides frame capture and JPEG encoding for the
// analysis pipeline. The webcam source requires OpenCV and is behind the
// gocv build tag; without it the pipeline degrades to externally supplied
// frames.
package camera

import (
	"context"
	"errors"
	"image"
)

// ErrCameraUnavailable is returned when no camera device can be opened or
// the binary was built without camera support.
var ErrCameraUnavailable = errors.New("camera unavailable")

// Source produces frames for analysis.
type Source interface {
	// Frame captures the next frame. Blocks until a frame is available
	// or the context is done.
	Frame(ctx context.Context) (image.Image, error)
	Close() error
}

// StillSource serves a fixed set of images in order, then repeats the
// last one. Used for single-shot CLI captures and in tests.
type StillSource struct {
	images []image.Image
	next   int
}

func NewStillSource(images ...image.Image) *StillSource {
	return &StillSource{images: images}
}

func (s *StillSource) Frame(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.images) == 0 {
		return nil, ErrCameraUnavailable
	}
	img := s.images[s.next]
	if s.next < len(s.images)-1 {
		s.next++
	}
	return img, nil
}

func (s *StillSource) Close() error { return nil }
