// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Slot buffers start on a 64-byte boundary so that the first slot of every
// buffer shares a cache line with nothing else.
//
// # Reallocation
//
// Realloc never grows a buffer in place. It allocates a fresh aligned buffer
// and copies the live prefix, so the old buffer stays intact until the caller
// drops it.
package mem
