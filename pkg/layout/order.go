package layout

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
)

// CompareIDs orders sibling ids. When both ids parse as numbers they are
// compared numerically; otherwise, and on numeric ties such as "1" and
// "1.0", they are compared as strings.
func CompareIDs(a, b string) int {
	if x, ok := parseNumber(a); ok {
		if y, ok := parseNumber(b); ok {
			if c := cmp.Compare(x, y); c != 0 {
				return c
			}
		}
	}
	return strings.Compare(a, b)
}

// SortIDs sorts ids in place by [CompareIDs].
//
// Mixed numeric and non-numeric ids can make the comparison
// non-transitive ("2" < "10" numerically, "10" < "1a" < "2" as strings).
// The ids are therefore put in plain string order first, so the result
// depends only on the set of ids and never on the order they arrived in.
func SortIDs(ids []string) {
	slices.Sort(ids)
	slices.SortStableFunc(ids, CompareIDs)
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
