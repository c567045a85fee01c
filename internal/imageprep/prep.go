package imageprep

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	_ "image/jpeg" // register decoder for phone uploads

	"golang.org/x/image/draw"
)

// DefaultMaxDimension bounds the longer image side before the bytes go to
// the vision API. Bigger photos cost tokens without helping extraction.
const DefaultMaxDimension = 1600

// Preprocess decodes an uploaded form image and downscales it so neither
// dimension exceeds maxDim, preserving aspect ratio. Output is PNG, which
// keeps printed text edges sharper than a second JPEG pass.
func Preprocess(data []byte, maxDim int) ([]byte, error) {
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return encodePNG(src)
	}

	ratio := float64(maxDim) / float64(w)
	if rh := float64(maxDim) / float64(h); rh < ratio {
		ratio = rh
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*ratio), int(float64(h)*ratio)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return encodePNG(dst)
}

// Enhance converts to grayscale and stretches contrast by 1.2 around the
// midpoint. Helps with dim phone photos of printed forms.
func Enhance(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := src.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(src.At(x, y)).(color.Gray)
			v := (float64(g.Y)-128)*1.2 + 128
			if v < 0 {
				v = 0
			}
			if v > 255 {
				v = 255
			}
			dst.SetGray(x, y, color.Gray{Y: uint8(v)})
		}
	}
	return encodePNG(dst)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
