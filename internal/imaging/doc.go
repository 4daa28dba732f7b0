// Package imaging holds the collaborators around the keying core: loading
// files into RGBA buffers, saving results, rendering previews and sampling
// colours to help pick a key range.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based with (0,0) at the
// top-left corner, X increasing rightward and Y increasing downward.
//
// # Buffers
//
// Every image handed out by this package is an *image.NRGBA: 8 bits per
// channel, non-premultiplied, bounds starting at the origin. Paletted, gray,
// YCbCr and 16-bit sources are converted on load, so the keying pass never
// has to deal with them.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Buffers returned from the
// cache are shared between callers and must not be modified; keying.Apply
// never writes to its source, which is what makes sharing safe.
//
// # Error Handling
//
// Failures are reported with the sentinel errors from the keying package:
//   - keying.ErrIO when a file cannot be opened, read or written
//   - keying.ErrDecode when a file is not a supported image
//   - keying.ErrEncode when a result cannot be encoded or the destination
//     is not a PNG file
//   - keying.ErrNoImageLoaded when no image was supplied
package imaging
