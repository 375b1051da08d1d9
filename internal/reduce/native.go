package reduce

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/rs/zerolog/log"

	"github.com/local/pdftools/internal/errs"
	"github.com/local/pdftools/internal/pagesel"
)

// PageStats reports what the native strategy touched.
type PageStats struct {
	PagesCompressed int
	PagesKept       int
	ImagesReplaced  int
	ImagesKept      int
}

// CompressImages recompresses every raster image on the selected pages of
// the PDF at inPath and writes the result to outPath. A nil selection means
// all pages. An image is replaced only when the re-encoded version is
// strictly smaller; any per-image failure keeps the original and never
// aborts the operation.
func CompressImages(inPath, outPath string, percent int, pages pagesel.Set, recompressJPEG bool) (PageStats, error) {
	var stats PageStats

	ctx, err := api.ReadContextFile(inPath)
	if err != nil {
		return stats, fmt.Errorf("failed to read pdf: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return stats, fmt.Errorf("invalid pdf: %w", err)
	}
	if ctx.PageCount == 0 {
		return stats, errs.InvalidArgumentf("input PDF has no pages")
	}

	quality := TargetQuality(percent)

	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		if !pages.Contains(pageNr) {
			stats.PagesKept++
			continue
		}
		stats.PagesCompressed++

		handles, err := extractImages(ctx, pageNr)
		if err != nil {
			log.Warn().Err(err).Int("page", pageNr).Msg("page image extraction failed, page left unchanged")
			continue
		}
		for _, h := range handles {
			replaced, err := recompressImage(ctx, h, quality, recompressJPEG)
			if err != nil {
				log.Warn().Err(err).Int("page", pageNr).Str("image", h.name).Msg("image compression failed, keeping original")
				stats.ImagesKept++
				continue
			}
			if replaced {
				stats.ImagesReplaced++
			} else {
				stats.ImagesKept++
			}
		}
	}

	if err := api.WriteContextFile(ctx, outPath); err != nil {
		return stats, fmt.Errorf("failed to write pdf: %w", err)
	}

	log.Info().
		Int("pages_compressed", stats.PagesCompressed).
		Int("pages_kept", stats.PagesKept).
		Int("images_replaced", stats.ImagesReplaced).
		Int("images_kept", stats.ImagesKept).
		Int("quality", quality).
		Msg("native compression finished")

	return stats, nil
}

// imageHandle addresses one image XObject within a page's resources.
type imageHandle struct {
	name   string
	pageNr int
	ref    types.IndirectRef
	sd     *types.StreamDict
}

// extractImages returns a handle for every image XObject referenced by the
// page's resource dictionary. Absent resources or XObjects yield an empty
// list, not an error.
func extractImages(ctx *model.Context, pageNr int) ([]imageHandle, error) {
	pageDict, _, _, err := ctx.PageDict(pageNr, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get page dict: %w", err)
	}
	if pageDict == nil {
		return nil, nil
	}

	resObj, ok := pageDict["Resources"]
	if !ok || resObj == nil {
		return nil, nil
	}
	resDict, err := ctx.DereferenceDict(resObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference resources: %w", err)
	}
	xoObj, ok := resDict["XObject"]
	if !ok || xoObj == nil {
		return nil, nil
	}
	xoDict, err := ctx.DereferenceDict(xoObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference xobjects: %w", err)
	}

	var handles []imageHandle
	for name, entry := range xoDict {
		indRef, ok := entry.(types.IndirectRef)
		if !ok {
			continue
		}
		sd, _, err := ctx.DereferenceStreamDict(indRef)
		if err != nil || sd == nil {
			continue
		}
		if subtype, ok := sd.Dict["Subtype"].(types.Name); !ok || subtype != "Image" {
			continue
		}
		handles = append(handles, imageHandle{name: name, pageNr: pageNr, ref: indRef, sd: sd})
	}
	// map iteration order is random; keep replacement order deterministic
	sort.Slice(handles, func(i, j int) bool { return handles[i].name < handles[j].name })
	return handles, nil
}

// recompressImage re-encodes one image at the target quality and swaps it
// into the document if the result is strictly smaller. Returns whether the
// stream was replaced.
func recompressImage(ctx *model.Context, h imageHandle, quality int, recompressJPEG bool) (bool, error) {
	sd := h.sd

	if mask, ok := sd.Dict["ImageMask"].(types.Boolean); ok && bool(mask) {
		return false, nil
	}

	filters := filterNames(sd.FilterPipeline)
	isDCT := len(filters) == 1 && filters[0] == "DCTDecode"

	// Skip images already encoded as JPEG unless forced recompress.
	if isDCT && !recompressJPEG {
		return false, nil
	}

	img, err := decodeImage(ctx, sd, filters, isDCT)
	if err != nil {
		return false, err
	}

	if smObj, ok := sd.Dict["SMask"]; ok && smObj != nil {
		if m, merr := decodeSoftMask(ctx, smObj); merr == nil && m != nil {
			img = applyMask(img, m)
		} else if merr != nil {
			log.Debug().Err(merr).Str("image", h.name).Msg("soft mask not applied")
		}
	}

	encoded, err := encodeJPEG(img, quality)
	if err != nil {
		return false, err
	}
	if len(encoded) >= len(sd.Raw) {
		return false, nil
	}

	bounds := img.Bounds()
	replaceImageStream(sd, encoded, bounds.Dx(), bounds.Dy())

	entry, ok := ctx.FindTableEntry(h.ref.ObjectNumber.Value(), h.ref.GenerationNumber.Value())
	if !ok {
		return false, fmt.Errorf("xref entry for image object %d not found", h.ref.ObjectNumber.Value())
	}
	entry.Object = *sd

	log.Debug().
		Str("image", h.name).
		Int("page", h.pageNr).
		Int("new_size", len(encoded)).
		Msg("image stream replaced")
	return true, nil
}

// decodeImage turns the stream's encoded bytes into pixel data. DCT streams
// decode straight from the raw JPEG bytes; everything else is decoded via
// the filter pipeline into 8-bit samples interpreted by the color space.
func decodeImage(ctx *model.Context, sd *types.StreamDict, filters []string, isDCT bool) (image.Image, error) {
	if isDCT {
		img, err := jpeg.Decode(bytes.NewReader(sd.Raw))
		if err != nil {
			return nil, fmt.Errorf("failed to decode embedded JPEG: %w", err)
		}
		return img, nil
	}

	for _, f := range filters {
		switch f {
		case "FlateDecode", "LZWDecode", "RunLengthDecode", "ASCII85Decode", "ASCIIHexDecode":
		default:
			return nil, fmt.Errorf("unsupported image filter %s", f)
		}
	}

	if err := sd.Decode(); err != nil {
		return nil, fmt.Errorf("failed to decode image stream: %w", err)
	}

	width, err := dictInt(ctx, sd.Dict, "Width")
	if err != nil {
		return nil, err
	}
	height, err := dictInt(ctx, sd.Dict, "Height")
	if err != nil {
		return nil, err
	}
	bpc, err := dictInt(ctx, sd.Dict, "BitsPerComponent")
	if err != nil {
		return nil, err
	}
	if bpc != 8 {
		return nil, fmt.Errorf("unsupported bits per component %d", bpc)
	}

	components, err := colorSpaceComponents(ctx, sd.Dict["ColorSpace"])
	if err != nil {
		return nil, err
	}

	return samplesToImage(sd.Content, width, height, components)
}

// decodeSoftMask decodes an SMask stream into a grayscale alpha image.
func decodeSoftMask(ctx *model.Context, obj types.Object) (*image.Gray, error) {
	sd, _, err := ctx.DereferenceStreamDict(obj)
	if err != nil || sd == nil {
		return nil, fmt.Errorf("failed to dereference soft mask: %v", err)
	}
	for _, f := range filterNames(sd.FilterPipeline) {
		if f == "DCTDecode" || f == "JPXDecode" || f == "CCITTFaxDecode" {
			return nil, fmt.Errorf("unsupported soft mask filter %s", f)
		}
	}
	if err := sd.Decode(); err != nil {
		return nil, fmt.Errorf("failed to decode soft mask stream: %w", err)
	}
	width, err := dictInt(ctx, sd.Dict, "Width")
	if err != nil {
		return nil, err
	}
	height, err := dictInt(ctx, sd.Dict, "Height")
	if err != nil {
		return nil, err
	}
	if len(sd.Content) < width*height {
		return nil, fmt.Errorf("soft mask data too short")
	}
	mask := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		copy(mask.Pix[y*mask.Stride:], sd.Content[y*width:(y+1)*width])
	}
	return mask, nil
}

// applyMask attaches the mask as an alpha channel so the subsequent JPEG
// encode flattens transparent regions onto white.
func applyMask(img image.Image, mask *image.Gray) image.Image {
	bounds := img.Bounds()
	mb := mask.Bounds()
	if bounds.Dx() != mb.Dx() || bounds.Dy() != mb.Dy() {
		return img
	}
	out := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			a := mask.GrayAt(mb.Min.X+x-bounds.Min.X, mb.Min.Y+y-bounds.Min.Y).Y
			out.SetNRGBA(x, y, color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a})
		}
	}
	return out
}

// replaceImageStream rewrites the stream dict in place as a baseline JPEG.
func replaceImageStream(sd *types.StreamDict, encoded []byte, width, height int) {
	sd.Raw = encoded
	sd.Content = nil
	sd.FilterPipeline = []types.PDFFilter{{Name: "DCTDecode"}}

	d := sd.Dict
	d["Filter"] = types.Name("DCTDecode")
	delete(d, "DecodeParms")
	delete(d, "SMask")
	delete(d, "Mask")
	delete(d, "Decode")
	d["ColorSpace"] = types.Name("DeviceRGB")
	d["BitsPerComponent"] = types.Integer(8)
	d["Width"] = types.Integer(width)
	d["Height"] = types.Integer(height)
	d["Length"] = types.Integer(len(encoded))

	length := int64(len(encoded))
	sd.StreamLength = &length
}

func filterNames(pipeline []types.PDFFilter) []string {
	names := make([]string, 0, len(pipeline))
	for _, f := range pipeline {
		names = append(names, f.Name)
	}
	return names
}

// dictInt resolves a possibly-indirect integer entry.
func dictInt(ctx *model.Context, d types.Dict, key string) (int, error) {
	obj, ok := d[key]
	if !ok || obj == nil {
		return 0, fmt.Errorf("missing %s entry", key)
	}
	resolved, err := ctx.Dereference(obj)
	if err != nil {
		return 0, fmt.Errorf("failed to dereference %s: %w", key, err)
	}
	n, ok := resolved.(types.Integer)
	if !ok {
		return 0, fmt.Errorf("%s is not an integer", key)
	}
	return n.Value(), nil
}

// colorSpaceComponents maps a color space object to its component count.
// Handles the device color spaces plus ICCBased; indexed and separation
// spaces are rejected so their images stay untouched.
func colorSpaceComponents(ctx *model.Context, obj types.Object) (int, error) {
	if obj == nil {
		return 0, fmt.Errorf("missing ColorSpace entry")
	}
	resolved, err := ctx.Dereference(obj)
	if err != nil {
		return 0, fmt.Errorf("failed to dereference color space: %w", err)
	}

	switch cs := resolved.(type) {
	case types.Name:
		switch cs {
		case "DeviceGray", "CalGray":
			return 1, nil
		case "DeviceRGB", "CalRGB":
			return 3, nil
		case "DeviceCMYK":
			return 4, nil
		}
		return 0, fmt.Errorf("unsupported color space %s", cs)
	case types.Array:
		if len(cs) >= 2 {
			if name, ok := cs[0].(types.Name); ok && name == "ICCBased" {
				iccSD, _, err := ctx.DereferenceStreamDict(cs[1])
				if err != nil || iccSD == nil {
					return 0, fmt.Errorf("failed to dereference ICC profile: %v", err)
				}
				n, ok := iccSD.Dict["N"].(types.Integer)
				if !ok {
					return 0, fmt.Errorf("ICC profile missing N")
				}
				return n.Value(), nil
			}
		}
		return 0, fmt.Errorf("unsupported color space array")
	}
	return 0, fmt.Errorf("unexpected color space type %T", resolved)
}
