// Package coord packs horizontal world coordinates into 64-bit map keys.
//
// A key holds x in bits 32-63 and z in bits 0-31, each as a two's
// complement int32. Unpacking sign-extends both halves, so every int32 pair
// round-trips exactly.
package coord

// Pack packs (x, z) into a key. Both values are truncated to int32.
func Pack(x, z int) uint64 {
	return uint64(uint32(int32(x)))<<32 | uint64(uint32(int32(z)))
}

// Unpack returns the coordinates stored in key.
func Unpack(key uint64) (x, z int) {
	return int(int32(uint32(key >> 32))), int(int32(uint32(key)))
}

// Floor16 rounds v down to a multiple of 16, toward negative infinity.
func Floor16(v int) int {
	return v &^ 15
}

// Floor64 rounds v down to a multiple of 64, toward negative infinity.
func Floor64(v int) int {
	return v &^ 63
}
