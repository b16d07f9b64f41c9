package camera

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"
)

const (
	jpegQuality  = 80
	maxFrameSide = 1280
)

// EncodeFrame scales the frame down so neither side exceeds maxFrameSide
// and encodes it as JPEG. Keeping uploads small matters more than pixel
// fidelity for annotation quality.
func EncodeFrame(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("empty frame")
	}

	if w > maxFrameSide || h > maxFrameSide {
		scale := float64(maxFrameSide) / float64(max(w, h))
		dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeDataURL wraps JPEG bytes in a base64 data URL, the format browser
// clients post to the analyze endpoint.
func EncodeDataURL(jpegData []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpegData)
}
