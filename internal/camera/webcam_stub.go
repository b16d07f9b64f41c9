//go:build !gocv
// +build !gocv

package camera

import (
	"context"
	"image"
)

// WebcamSource is a stub; camera capture requires the gocv build tag.
type WebcamSource struct{}

// OpenWebcam reports the camera as unavailable when built without OpenCV.
func OpenWebcam(deviceID int) (*WebcamSource, error) {
	return nil, ErrCameraUnavailable
}

func (s *WebcamSource) Frame(ctx context.Context) (image.Image, error) {
	return nil, ErrCameraUnavailable
}

func (s *WebcamSource) Close() error { return nil }
