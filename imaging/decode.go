package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"golang.org/x/image/webp"
)

// ErrInvalidImage marks client-supplied payloads that cannot be decoded.
// Callers distinguish it from internal failures with errors.Is.
var ErrInvalidImage = errors.New("invalid image format")

// PixelBuffer is the canonical decoded image: 8-bit RGB rows, top to
// bottom, Height*Width*3 bytes. No resizing or normalization is applied
// here; that is the classifier's concern.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// At returns the RGB triple at (x, y).
func (b *PixelBuffer) At(x, y int) (r, g, bl uint8) {
	i := (y*b.Width + x) * 3
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2]
}

// ParseDataURL splits an optional "data:<mime>;base64,<payload>" wrapper.
// The MIME type is a diagnostic hint only and is never trusted for
// decoding decisions.
func ParseDataURL(s string) (mimeHint, payload string) {
	if !strings.HasPrefix(s, "data:") {
		return "", s
	}
	comma := strings.Index(s, ",")
	if comma == -1 {
		return "", s
	}
	header := s[len("data:"):comma]
	if i := strings.Index(header, ";"); i != -1 {
		header = header[:i]
	}
	return header, s[comma+1:]
}

// DecodeBase64 strips an optional data URL wrapper and base64-decodes
// the payload. A decode failure here is a client error.
func DecodeBase64(s string) (mimeHint string, raw []byte, err error) {
	mimeHint, payload := ParseDataURL(s)
	payload = strings.TrimSpace(payload)
	raw, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Some clients omit padding.
		raw, err = base64.RawStdEncoding.DecodeString(payload)
	}
	if err != nil {
		return mimeHint, nil, fmt.Errorf("%w: base64 decode failed: %v", ErrInvalidImage, err)
	}
	return mimeHint, raw, nil
}

// DecodePixels decodes raw image bytes into the canonical RGB buffer.
// The standard raster decoders are tried first; formats they reject get
// a second, more permissive pass. The MIME hint is only attached to the
// error when both fail.
func DecodePixels(raw []byte, mimeHint string) (*PixelBuffer, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		img, err = webp.Decode(bytes.NewReader(raw))
	}
	if err != nil {
		if mimeHint != "" {
			return nil, fmt.Errorf("%w: undecodable payload (declared %s)", ErrInvalidImage, mimeHint)
		}
		return nil, fmt.Errorf("%w: undecodable payload", ErrInvalidImage)
	}

	if o := orientationOf(raw); o != 1 {
		img = correctOrientation(img, o)
	}
	return toRGB(img), nil
}

// Decode runs the full path: data URL handling, base64 decode and the
// two-stage raster decode.
func Decode(s string) (*PixelBuffer, error) {
	mimeHint, raw, err := DecodeBase64(s)
	if err != nil {
		return nil, err
	}
	return DecodePixels(raw, mimeHint)
}

// toRGB flattens any decoded image into three-channel 8-bit row-major
// order.
func toRGB(img image.Image) *PixelBuffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	buf := &PixelBuffer{
		Width:  w,
		Height: h,
		Pix:    make([]uint8, w*h*3),
	}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			buf.Pix[i] = uint8(r >> 8)
			buf.Pix[i+1] = uint8(g >> 8)
			buf.Pix[i+2] = uint8(b >> 8)
			i += 3
		}
	}
	return buf
}
