package reduce

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
)

// TargetQuality converts a requested reduction percent into JPEG encoder
// quality. Monotonically decreasing, floor 10, ceiling 95.
func TargetQuality(reductionPercent int) int {
	q := 100 - reductionPercent
	if q < 10 {
		q = 10
	}
	if q > 95 {
		q = 95
	}
	return q
}

// encodeJPEG flattens img onto a white background if it carries alpha,
// converts to RGB and encodes at the given quality.
func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	opts := &jpeg.Options{Quality: quality}
	if err := jpeg.Encode(&buf, flattenOnWhite(img), opts); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// flattenOnWhite composites img over an opaque white background. Images
// without alpha pass through via draw.Src so the copy stays cheap.
func flattenOnWhite(img image.Image) image.Image {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, bounds, img, bounds.Min, draw.Over)
	return out
}

// samplesToImage builds an image from raw 8-bit-per-component sample data
// for the given color component count (1=gray, 3=rgb, 4=cmyk).
func samplesToImage(samples []byte, width, height, components int) (image.Image, error) {
	want := width * height * components
	if len(samples) < want {
		return nil, fmt.Errorf("sample data too short: have %d, want %d", len(samples), want)
	}

	switch components {
	case 1:
		img := image.NewGray(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			copy(img.Pix[y*img.Stride:], samples[y*width:(y+1)*width])
		}
		return img, nil
	case 3:
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		i := 0
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				img.SetRGBA(x, y, color.RGBA{R: samples[i], G: samples[i+1], B: samples[i+2], A: 255})
				i += 3
			}
		}
		return img, nil
	case 4:
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		i := 0
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				r, g, b := color.CMYKToRGB(samples[i], samples[i+1], samples[i+2], samples[i+3])
				img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
				i += 4
			}
		}
		return img, nil
	default:
		return nil, fmt.Errorf("unsupported component count %d", components)
	}
}
