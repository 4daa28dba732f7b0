package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/chroma-key-mcp/internal/keying"
)

// cacheEntry is a decoded, normalised image together with what was learned
// while decoding it.
type cacheEntry struct {
	img    *image.NRGBA
	format string
	model  string
}

// ImageCache provides thread-safe caching of decoded images keyed by path.
//
// Every cached image has already been normalised to *image.NRGBA, so callers
// can hand it straight to keying.Apply. Cached buffers are shared and must be
// treated as read-only.
//
// Cached images remain in memory until explicitly removed via Evict() or
// Clear().
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/image.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := keying.Apply(img, rng)
type ImageCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		entries: make(map[string]*cacheEntry),
	}
}

// Load returns the normalised image for path, decoding it on first use.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP. Whatever the
// source colour model (paletted, gray, YCbCr, 16-bit, ...), the result is an
// 8-bit non-premultiplied *image.NRGBA.
//
// # Errors
//
//   - keying.ErrNoImageLoaded if path is empty
//   - keying.ErrIO if the file cannot be opened
//   - keying.ErrDecode if the file is not a supported image
func (c *ImageCache) Load(path string) (*image.NRGBA, error) {
	e, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return e.img, nil
}

func (c *ImageCache) load(path string) (*cacheEntry, error) {
	if path == "" {
		return nil, keying.ErrNoImageLoaded
	}

	key := filepath.Clean(path)

	c.mu.RLock()
	if e, ok := c.entries[key]; ok {
		c.mu.RUnlock()
		return e, nil
	}
	c.mu.RUnlock()

	e, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()

	return e, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing. Callers that
// overwrite a file must evict it so the next Load decodes the new contents.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.entries, filepath.Clean(path))
	c.mu.Unlock()
}

// Len reports how many images are cached.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// LoadFile decodes path without caching it.
func LoadFile(path string) (*image.NRGBA, error) {
	if path == "" {
		return nil, keying.ErrNoImageLoaded
	}
	e, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	return e.img, nil
}

func decodeFile(path string) (*cacheEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open image: %w", keying.ErrIO, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("%w: failed to read image: %w", keying.ErrIO, err)
		}
		return nil, fmt.Errorf("%w: failed to decode image: %w", keying.ErrDecode, err)
	}

	return &cacheEntry{
		img:    ToNRGBA(img),
		format: format,
		model:  colorModelName(img),
	}, nil
}

// ToNRGBA normalises any image to an 8-bit non-premultiplied RGBA buffer
// whose bounds start at the origin. An *image.NRGBA already at the origin is
// returned as is.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}

func colorModelName(img image.Image) string {
	switch img.(type) {
	case *image.Paletted:
		return "paletted"
	case *image.Gray:
		return "gray"
	case *image.Gray16:
		return "gray16"
	case *image.RGBA:
		return "rgba"
	case *image.NRGBA:
		return "nrgba"
	case *image.RGBA64:
		return "rgba64"
	case *image.NRGBA64:
		return "nrgba64"
	case *image.YCbCr:
		return "ycbcr"
	case *image.NYCbCrA:
		return "nycbcra"
	case *image.CMYK:
		return "cmyk"
	default:
		return "other"
	}
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder that recognised the file: "png", "jpeg", "gif",
	// "bmp", "tiff" or "webp".
	Format string `json:"format"`

	// ColorModel is the colour model the file decoded to before
	// normalisation, e.g. "paletted" or "ycbcr".
	ColorModel string `json:"color_model"`

	// HasAlpha reports whether any pixel is less than fully opaque.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through cache and describes it.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	e, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to stat file: %w", keying.ErrIO, err)
	}

	bounds := e.img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        e.format,
		ColorModel:    e.model,
		HasAlpha:      HasTransparency(e.img),
		FileSizeBytes: stat.Size(),
	}, nil
}

// HasTransparency reports whether any pixel of img has alpha below 255.
func HasTransparency(img *image.NRGBA) bool {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for i := 3; i < len(row); i += 4 {
			if row[i] != 255 {
				return true
			}
		}
	}
	return false
}
