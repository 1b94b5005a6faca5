package classifier

import (
	"image"

	"golang.org/x/image/draw"

	"nagrik-nivedan/imaging"
)

// preprocess scales the decoded buffer to the model's square input and
// normalizes channels to [0, 1], row-major RGB.
func preprocess(buf *imaging.PixelBuffer, size int) []float64 {
	src := image.NewRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	i := 0
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			o := src.PixOffset(x, y)
			src.Pix[o] = buf.Pix[i]
			src.Pix[o+1] = buf.Pix[i+1]
			src.Pix[o+2] = buf.Pix[i+2]
			src.Pix[o+3] = 0xff
			i += 3
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	input := make([]float64, size*size*3)
	j := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			o := dst.PixOffset(x, y)
			input[j] = float64(dst.Pix[o]) / 255.0
			input[j+1] = float64(dst.Pix[o+1]) / 255.0
			input[j+2] = float64(dst.Pix[o+2]) / 255.0
			j += 3
		}
	}
	return input
}
