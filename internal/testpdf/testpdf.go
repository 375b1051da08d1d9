// Package testpdf builds tiny but structurally valid PDF fixtures for tests.
package testpdf

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math/rand"
	"os"
)

// WriteMinimal writes a minimal N-page PDF (empty A4-ish pages) to path.
// Object offsets and the xref table are computed exactly so strict readers
// accept the file.
func WriteMinimal(path string, pages int) error {
	if pages < 1 {
		return fmt.Errorf("pages must be >= 1, got %d", pages)
	}

	var buf bytes.Buffer
	offsets := make([]int, 0, pages+2)

	buf.WriteString("%PDF-1.4\n")

	writeObj := func(body []byte) {
		offsets = append(offsets, buf.Len())
		buf.Write(body)
	}

	writeObj([]byte("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n"))
	writeObj(pagesObj(pages))

	for i := 0; i < pages; i++ {
		writeObj([]byte(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << >> >>\nendobj\n", 3+i)))
	}

	writeTail(&buf, offsets)
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// ImageKind selects how the embedded fixture images are encoded.
type ImageKind int

const (
	// ImageFlateNoise stores incompressible random samples behind
	// FlateDecode, so a lossy re-encode comes out strictly smaller.
	ImageFlateNoise ImageKind = iota
	// ImageFlateUniform stores a solid color that zlib already packs
	// tighter than any JPEG could.
	ImageFlateUniform
	// ImageJPEG embeds the samples as a quality-100 DCTDecode stream.
	ImageJPEG
)

const imgDim = 64

// WriteWithImages writes an N-page PDF where every page references one
// 64x64 DeviceRGB image XObject of the given kind. Sample data is seeded
// per page so streams on different pages differ.
func WriteWithImages(path string, pages int, kind ImageKind) error {
	if pages < 1 {
		return fmt.Errorf("pages must be >= 1, got %d", pages)
	}

	var buf bytes.Buffer
	offsets := make([]int, 0, 2*pages+2)

	buf.WriteString("%PDF-1.4\n")

	writeObj := func(body []byte) {
		offsets = append(offsets, buf.Len())
		buf.Write(body)
	}

	writeObj([]byte("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n"))
	writeObj(pagesObj(pages))

	for i := 0; i < pages; i++ {
		writeObj([]byte(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /XObject << /Im0 %d 0 R >> >> >>\nendobj\n", 3+i, 3+pages+i)))
	}

	for i := 0; i < pages; i++ {
		data, filter, err := imageStream(kind, int64(i+1))
		if err != nil {
			return err
		}
		var obj bytes.Buffer
		fmt.Fprintf(&obj, "%d 0 obj\n<< /Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /DeviceRGB /BitsPerComponent 8 /Filter /%s /Length %d >>\nstream\n", 3+pages+i, imgDim, imgDim, filter, len(data))
		obj.Write(data)
		obj.WriteString("\nendstream\nendobj\n")
		writeObj(obj.Bytes())
	}

	writeTail(&buf, offsets)
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// imageStream encodes one 64x64 RGB image stream for the given kind.
func imageStream(kind ImageKind, seed int64) ([]byte, string, error) {
	samples := make([]byte, imgDim*imgDim*3)
	switch kind {
	case ImageFlateUniform:
		for i := range samples {
			samples[i] = 0x7f
		}
	default:
		rand.New(rand.NewSource(seed)).Read(samples)
	}

	if kind == ImageJPEG {
		img := image.NewRGBA(image.Rect(0, 0, imgDim, imgDim))
		i := 0
		for y := 0; y < imgDim; y++ {
			for x := 0; x < imgDim; x++ {
				img.SetRGBA(x, y, color.RGBA{R: samples[i], G: samples[i+1], B: samples[i+2], A: 255})
				i += 3
			}
		}
		var out bytes.Buffer
		if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: 100}); err != nil {
			return nil, "", err
		}
		return out.Bytes(), "DCTDecode", nil
	}

	var out bytes.Buffer
	zw := zlib.NewWriter(&out)
	if _, err := zw.Write(samples); err != nil {
		return nil, "", err
	}
	if err := zw.Close(); err != nil {
		return nil, "", err
	}
	return out.Bytes(), "FlateDecode", nil
}

func pagesObj(pages int) []byte {
	kids := ""
	for i := 0; i < pages; i++ {
		kids += fmt.Sprintf("%d 0 R ", 3+i)
	}
	return []byte(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [ %s] /Count %d >>\nendobj\n", kids, pages))
}

func writeTail(buf *bytes.Buffer, offsets []int) {
	xrefOffset := buf.Len()
	fmt.Fprintf(buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xrefOffset)
}
