// Package score holds the "N/10" score pattern and the color buckets shared
// by inline score spans and table cells.
package score

import (
	"errors"
	"math"
	"regexp"
	"strconv"
)

// Bucket is the color class of a score value.
type Bucket int

const (
	None Bucket = iota
	Red
	Yellow
	Blue
	Green
)

// String returns the bucket name used in HTML classes and JSON summaries.
func (b Bucket) String() string {
	switch b {
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Yellow:
		return "yellow"
	case Red:
		return "red"
	default:
		return "none"
	}
}

var (
	// Pattern finds scores anywhere in text: "8/10", "7.5 / 10".
	Pattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*/\s*10`)

	exactPattern  = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*/\s*10$`)
	numberPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)$`)
)

// BucketFor maps a value to its color. Blue is the single value 8; values
// between 8 and 9 fall through to yellow.
func BucketFor(v float64) Bucket {
	switch {
	case v >= 9:
		return Green
	case v == 8:
		return Blue
	case v >= 5:
		return Yellow
	default:
		return Red
	}
}

// First returns the value of the leftmost score in s.
func First(s string) (float64, bool) {
	m := Pattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	return parse(m[1])
}

// Exact parses s when the whole string is a score such as "9/10".
func Exact(s string) (float64, bool) {
	m := exactPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	return parse(m[1])
}

// Number parses s when the whole string is a bare number such as "8.5".
func Number(s string) (float64, bool) {
	m := numberPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	return parse(m[1])
}

// parse keeps the +Inf ParseFloat returns for digit runs past float64 range.
func parse(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

// Finite clamps an infinite value to the largest float64 so it can be
// written as a JSON number.
func Finite(v float64) float64 {
	switch {
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	default:
		return v
	}
}
