// Package mcuuid converts the 4-int UUID encoding Minecraft stores in NBT
// into canonical hyphenated strings.
package mcuuid

import "fmt"

// FromInts builds a canonical lowercase UUID string from four signed 32-bit
// integers. Each value is masked to 32 bits (two's-complement wrap), the
// first pair forms the high 64 bits, the second pair the low 64 bits.
// Returns ("", false) unless exactly four integers are given.
func FromInts(ints []int64) (string, bool) {
	if len(ints) != 4 {
		return "", false
	}

	p := make([]uint64, 4)
	for i, v := range ints {
		p[i] = uint64(uint32(v))
	}

	high := p[0]<<32 | p[1]
	low := p[2]<<32 | p[3]

	s := fmt.Sprintf("%016x%016x", high, low)
	return s[0:8] + "-" + s[8:12] + "-" + s[12:16] + "-" + s[16:20] + "-" + s[20:32], true
}
