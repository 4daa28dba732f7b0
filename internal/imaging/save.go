package imaging

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/ironsheep/chroma-key-mcp/internal/keying"
)

// SavePNG writes img to path as a PNG file, the only format this tool
// persists to since it keeps the alpha channel intact.
//
// # Errors
//
//   - keying.ErrNoImageLoaded if img is nil
//   - keying.ErrEncode if path does not end in ".png" or encoding fails
//   - keying.ErrIO if the file cannot be created or written
func SavePNG(img image.Image, path string) error {
	if img == nil {
		return keying.ErrNoImageLoaded
	}
	if !strings.EqualFold(filepath.Ext(path), ".png") {
		return fmt.Errorf("%w: destination %q must have a .png extension", keying.ErrEncode, path)
	}

	// Encode fully and write to a sibling temp file so that a failed save
	// leaves the destination as it was.
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", keying.ErrIO, path, err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// EncodePNG returns img encoded as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: failed to encode image: %w", keying.ErrEncode, err)
	}
	return buf.Bytes(), nil
}
