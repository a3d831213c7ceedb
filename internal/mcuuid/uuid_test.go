package mcuuid

import (
	"strconv"
	"strings"
	"testing"
)

func TestFromInts(t *testing.T) {
	tests := []struct {
		ints []int64
		want string
	}{
		{[]int64{0, 1, 0, 2}, "00000000-0000-0001-0000-000000000002"},
		{[]int64{0, 0, 0, 0}, "00000000-0000-0000-0000-000000000000"},
		{[]int64{-1, -1, -1, -1}, "ffffffff-ffff-ffff-ffff-ffffffffffff"},
		{[]int64{-1155484576, 1234567890, -2147483648, 42}, "bb20b460-4996-02d2-8000-00000000002a"},
	}

	for _, tt := range tests {
		got, ok := FromInts(tt.ints)
		if !ok {
			t.Errorf("FromInts(%v) failed, want %s", tt.ints, tt.want)
			continue
		}
		if got != tt.want {
			t.Errorf("FromInts(%v) = %s, want %s", tt.ints, got, tt.want)
		}
	}
}

func TestFromIntsInvalid(t *testing.T) {
	for _, ints := range [][]int64{nil, {}, {1}, {1, 2, 3}, {1, 2, 3, 4, 5}} {
		if got, ok := FromInts(ints); ok {
			t.Errorf("FromInts(%v) = %s, want failure", ints, got)
		}
	}
}

// Re-splitting the canonical string back into four 32-bit groups must
// reproduce the masked inputs for any signed 32-bit values.
func TestFromIntsRoundTrip(t *testing.T) {
	cases := [][]int64{
		{0, 0, 0, 1},
		{2147483647, -2147483648, 1, -1},
		{-559038737, 305419896, -1412567295, 2023406814},
	}

	for _, ints := range cases {
		s, ok := FromInts(ints)
		if !ok {
			t.Fatalf("FromInts(%v) failed", ints)
		}
		hex := strings.ReplaceAll(s, "-", "")
		if len(hex) != 32 {
			t.Fatalf("FromInts(%v) = %s, want 32 hex digits", ints, s)
		}
		for i, part := range []string{hex[0:8], hex[8:16], hex[16:24], hex[24:32]} {
			v, err := strconv.ParseUint(part, 16, 32)
			if err != nil {
				t.Fatalf("parse group %d of %s: %v", i, s, err)
			}
			if uint32(v) != uint32(ints[i]) {
				t.Errorf("group %d of %s = %08x, want %08x", i, s, v, uint32(ints[i]))
			}
		}
	}
}
