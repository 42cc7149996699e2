// Package imaging provides the core pixel-art transformations.
//
// The package operates on standard Go image.Image values and implements four
// independent operations:
//
//   - Pixelize: block-aligned resampling that realigns pixel-art blocks and
//     re-applies the block structure after an integer reduction
//   - Reduce / Enlarge: integer-factor scaling with nearest-neighbor
//     sampling only, so block edges stay hard
//   - ApproximateColors: outlier-color smoothing against a reference palette
//     using 8-neighborhood averaging
//   - CountColors / Summarize: color-frequency reporting
//
// Every operation reads the input image and produces a new image; the
// caller's buffer is never mutated or aliased. Inputs in other color models
// (16-bit, paletted, YCbCr) are converted to 8-bit RGB before processing.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner,
// X increasing rightward and Y increasing downward.
//
// # Error Handling
//
// Parameters are validated before any processing starts. Validation failures
// wrap ErrInvalidParameter so callers can test with errors.Is:
//
//   - non-positive scale factors
//   - negative tolerance or discrepancy threshold
//   - empty reference-color lists
//   - images with zero area
//
// File I/O failures wrap the underlying error together with the attempted
// path.
package imaging
