package dream

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidSeed is returned by ParseSeed for text that is not an integer.
var ErrInvalidSeed = errors.New("dream: seed must be an integer")

var seedPattern = regexp.MustCompile(`^-?\d+$`)

const seedModulus = 1 << 32

// NormalizeSeed folds any integer onto a usable generator seed: the absolute
// value reduced mod 2^32, with 0 replaced by 1.
func NormalizeSeed(v int64) uint32 {
	u := uint64(v)
	if v < 0 {
		u = uint64(-(v + 1)) + 1
	}
	n := uint32(u % seedModulus)
	if n == 0 {
		return 1
	}
	return n
}

// NormalizeSeedFloat is NormalizeSeed for loosely typed input. It floors
// before taking the absolute value; NaN and infinities become 1.
func NormalizeSeedFloat(v float64) uint32 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 1
	}
	n := math.Mod(math.Abs(math.Floor(v)), seedModulus)
	if n == 0 {
		return 1
	}
	return uint32(n)
}

// ParseSeed reads a seed from text such as a URL parameter or flag value.
func ParseSeed(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	if !seedPattern.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeed, s)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return NormalizeSeed(v), nil
	}
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSeed, ferr)
	}
	return NormalizeSeedFloat(f), nil
}
