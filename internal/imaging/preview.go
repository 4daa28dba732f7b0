package imaging

import (
	"encoding/base64"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/chroma-key-mcp/internal/keying"
)

// DefaultPreviewSize is the bounding box, in pixels, previews are fitted
// into when the caller does not ask for another size.
const DefaultPreviewSize = 250

// PreviewResult contains a downscaled rendering of an image.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Preview fits img inside a maxSize×maxSize box, keeping the aspect ratio,
// and returns it as a base64 PNG. Images already inside the box are not
// upscaled. maxSize <= 0 selects DefaultPreviewSize.
//
// Only the returned preview is scaled; img itself is left untouched.
func Preview(img image.Image, maxSize int) (*PreviewResult, error) {
	if img == nil {
		return nil, keying.ErrNoImageLoaded
	}
	if maxSize <= 0 {
		maxSize = DefaultPreviewSize
	}

	var thumb image.Image = img
	b := img.Bounds()
	if b.Dx() > maxSize || b.Dy() > maxSize {
		thumb = imaging.Fit(img, maxSize, maxSize, imaging.Lanczos)
	}

	data, err := EncodePNG(thumb)
	if err != nil {
		return nil, err
	}

	return &PreviewResult{
		Width:       thumb.Bounds().Dx(),
		Height:      thumb.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    "image/png",
	}, nil
}
