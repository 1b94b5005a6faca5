package imaging

import (
	"bytes"
	"image"

	"github.com/rwcarlsen/goexif/exif"
)

// orientationOf extracts the EXIF orientation tag, defaulting to 1 when
// the payload carries no EXIF data.
func orientationOf(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	v, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return v
}

// correctOrientation rewrites the image so that pixel order matches the
// display orientation declared in EXIF.
func correctOrientation(img image.Image, orientation int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	set := func(dst *image.RGBA, mapXY func(x, y int) (int, int)) image.Image {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dx, dy := mapXY(x, y)
				dst.Set(dx, dy, img.At(bounds.Min.X+x, bounds.Min.Y+y))
			}
		}
		return dst
	}

	switch orientation {
	case 2: // mirrored
		return set(image.NewRGBA(image.Rect(0, 0, w, h)), func(x, y int) (int, int) { return w - 1 - x, y })
	case 3: // rotated 180
		return set(image.NewRGBA(image.Rect(0, 0, w, h)), func(x, y int) (int, int) { return w - 1 - x, h - 1 - y })
	case 4: // flipped
		return set(image.NewRGBA(image.Rect(0, 0, w, h)), func(x, y int) (int, int) { return x, h - 1 - y })
	case 5: // transposed
		return set(image.NewRGBA(image.Rect(0, 0, h, w)), func(x, y int) (int, int) { return y, x })
	case 6: // rotated 90 CW
		return set(image.NewRGBA(image.Rect(0, 0, h, w)), func(x, y int) (int, int) { return h - 1 - y, x })
	case 7: // transverse
		return set(image.NewRGBA(image.Rect(0, 0, h, w)), func(x, y int) (int, int) { return h - 1 - y, w - 1 - x })
	case 8: // rotated 90 CCW
		return set(image.NewRGBA(image.Rect(0, 0, h, w)), func(x, y int) (int, int) { return y, w - 1 - x })
	default:
		return img
	}
}
