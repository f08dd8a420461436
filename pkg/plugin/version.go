package plugin

import (
	"unicode"

	"github.com/Masterminds/semver/v3"
)

func compareVersions(a, b string) int {
	return CompareVersions(a, b)
}

// CompareVersions defines a total order on version strings; dependency
// resolution and FindPluginWithNewestVersion are built on it. If both
// strings parse as semver, comparison defers to semver.Version.Compare,
// the well-tested path for the common case ("1.2.3", "v2.0.0").
// Otherwise it falls back to a version-style collation: digit runs
// compare numerically, other runs compare lexicographically, segment by
// segment.
//
// Returns -1, 0, or 1, matching the sign of a.compareTo(b).
func CompareVersions(a, b string) int {
	if a == b {
		return 0
	}

	if av, aerr := semver.NewVersion(a); aerr == nil {
		if bv, berr := semver.NewVersion(b); berr == nil {
			return av.Compare(bv)
		}
	}

	return compareVersionSegments(a, b)
}

// compareVersionSegments splits two strings into runs of digits and
// non-digits and compares run by run: digit runs numerically (by length
// first, to avoid allocating a bignum parser, then lexicographically for
// equal-length runs), other runs byte-for-byte.
func compareVersionSegments(a, b string) int {
	ar, br := []rune(a), []rune(b)
	i, j := 0, 0
	for i < len(ar) && j < len(br) {
		if unicode.IsDigit(ar[i]) && unicode.IsDigit(br[j]) {
			iStart := i
			for i < len(ar) && unicode.IsDigit(ar[i]) {
				i++
			}
			jStart := j
			for j < len(br) && unicode.IsDigit(br[j]) {
				j++
			}
			if c := compareDigitRuns(ar[iStart:i], br[jStart:j]); c != 0 {
				return c
			}
			continue
		}

		if ar[i] != br[j] {
			if ar[i] < br[j] {
				return -1
			}
			return 1
		}
		i++
		j++
	}

	switch {
	case i < len(ar):
		return 1
	case j < len(br):
		return -1
	default:
		return 0
	}
}

// compareDigitRuns compares two runs of digit runes as unsigned integers
// without overflow risk, by stripping leading zeros then comparing length
// and, on a tie, lexicographically (equal-length digit strings compare
// the same numerically as lexicographically).
func compareDigitRuns(a, b []rune) int {
	a = stripLeadingZeros(a)
	b = stripLeadingZeros(b)

	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func stripLeadingZeros(r []rune) []rune {
	i := 0
	for i < len(r)-1 && r[i] == '0' {
		i++
	}
	return r[i:]
}
