// Package keying implements chroma keying by box threshold.
//
// A ChannelRange describes an inclusive box in RGB space. Apply walks an
// image buffer and replaces every pixel whose red, green and blue values fall
// inside the box with a fully transparent pixel. All other pixels are copied
// verbatim, including their original alpha.
//
// # Buffers
//
// Image buffers are *image.NRGBA values: 8-bit, non-premultiplied RGBA in
// row-major order with a top-left origin. Callers that hold any other
// image.Image must normalise it first (see the imaging package). The source
// buffer is never modified; every call returns a freshly allocated buffer
// with identical bounds.
//
// # Ranges
//
// Bounds are compared as plain integers. A channel whose minimum exceeds its
// maximum never matches, and bounds outside 0-255 are legal (a maximum of 256
// simply covers the top of the domain). Nothing in this package rejects a
// range because of its values.
//
// # Modes
//
// ModeWhiteout, the default, overwrites matched pixels with (255,255,255,0).
// Existing saved images depend on that exact output. ModePreserveColor keeps
// the matched pixel's RGB and only clears its alpha.
//
// # Concurrency
//
// Every pixel is transformed independently. Apply splits the rows into
// contiguous bands and processes them on separate goroutines; each goroutine
// writes a disjoint set of output rows and only reads the source, so no
// locking is involved. Apply itself is stateless and safe to call
// concurrently.
package keying
