// Package conv provides checked integer conversion and arithmetic.
//
// Buffer sizes are computed as slot count times slot width. On overflow these
// helpers return an error instead of wrapping silently, so callers can report
// an allocation failure and leave the container unchanged.
package conv
