//go:build gocv
// +build gocv

package camera

import (
	"context"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// WebcamSource captures frames from a local camera device via OpenCV.
type WebcamSource struct {
	mu      sync.Mutex
	capture *gocv.VideoCapture
}

// OpenWebcam opens the camera at the given device index.
func OpenWebcam(deviceID int) (*WebcamSource, error) {
	capture, err := gocv.OpenVideoCapture(deviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, ErrCameraUnavailable
	}
	return &WebcamSource{capture: capture}, nil
}

func (s *WebcamSource) Frame(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	mat := gocv.NewMat()
	defer mat.Close()

	if ok := s.capture.Read(&mat); !ok || mat.Empty() {
		return nil, fmt.Errorf("%w: failed to read frame", ErrCameraUnavailable)
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert frame: %w", err)
	}
	return img, nil
}

func (s *WebcamSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capture.Close()
}
