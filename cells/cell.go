package cells

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

type Cell interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

func MaxValue[T Cell]() T {
	return ^T(0)
}

func Width[T Cell]() int {
	return bits.Len64(uint64(MaxValue[T]()))
}

// Parse accepts decimal, 0b, 0o, 0x prefixed or h suffixed literals, case-insensitive.
func Parse[T Cell](str string) (T, error) {
	digits := str
	radix := 10
	lower := strings.ToLower(str)
	switch {
	case strings.HasPrefix(lower, "0b"):
		radix = 2
		digits = str[2:]
	case strings.HasPrefix(lower, "0o"):
		radix = 8
		digits = str[2:]
	case strings.HasPrefix(lower, "0x"):
		radix = 16
		digits = str[2:]
	case strings.HasSuffix(lower, "h"):
		radix = 16
		digits = str[:len(str)-1]
	}
	v, err := strconv.ParseUint(digits, radix, Width[T]())
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", str, err)
	}
	return T(v), nil
}
