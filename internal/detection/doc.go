// Package detection infers the characteristic block size of pixel-art images.
//
// Pixel art produced by upscaling a low-resolution sprite consists of
// rectangular blocks of identical pixels. This package measures those blocks
// from run-length statistics: every row (or column) is scanned for maximal
// runs of exactly-equal pixels, and the rounded arithmetic mean of all run
// lengths is the characteristic block extent along that axis.
//
// # Axes
//
// DetectBlockSize measures runs along one axis at a time:
//
//   - Horizontal: runs along each row, estimating the block width
//   - Vertical: runs along each column, estimating the block height
//
// DetectBlocks combines both measurements with their rounded average, which
// the resample pipeline uses as the characteristic block size.
//
// # Pixel Equality
//
// Two pixels belong to the same run only when all three 8-bit RGB channels
// match exactly. Images are converted to 8-bit RGB before scanning, so
// 16-bit or paletted sources are compared after conversion.
//
// # Error Conditions
//
//   - ErrEmptyImage: the image has zero area
//   - ErrNoRuns: no run was ever recorded (cannot happen for non-empty
//     input, but guarded against regardless)
//
// Results are only meaningful for images that actually have a block
// structure; on photographs the mean run length degenerates toward 1.
package detection
