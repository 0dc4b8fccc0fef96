// Package bep53 implements the select-only index range lists of BEP 53 ("0,2,4-6").
package bep53

import (
	"slices"
	"strconv"
	"strings"
)

// Parse expands range strings such as "4-6" into their indices, in input order.
// Malformed or reversed ranges are skipped.
func Parse(ranges []string) []int {
	var out []int
	for _, r := range ranges {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		startStr, endStr, isRange := strings.Cut(r, "-")
		start, err := strconv.Atoi(startStr)
		if err != nil || start < 0 {
			continue
		}
		end := start
		if isRange {
			end, err = strconv.Atoi(endStr)
			if err != nil || end < start {
				continue
			}
		}
		for i := start; i <= end; i++ {
			out = append(out, i)
		}
	}
	return out
}

// ParseString splits s on ',' and expands it with Parse.
func ParseString(s string) []int {
	return Parse(strings.Split(s, ","))
}

// Ranges collapses indices into sorted, de-duplicated ranges.
func Ranges(indices []int) []string {
	if len(indices) == 0 {
		return nil
	}
	sorted := slices.Clone(indices)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	var out []string
	start, prev := sorted[0], sorted[0]
	flush := func() {
		if start == prev {
			out = append(out, strconv.Itoa(start))
		} else {
			out = append(out, strconv.Itoa(start)+"-"+strconv.Itoa(prev))
		}
	}
	for _, n := range sorted[1:] {
		if n == prev+1 {
			prev = n
			continue
		}
		flush()
		start, prev = n, n
	}
	flush()
	return out
}

// Compose is the inverse of ParseString: Compose([]int{0, 2, 4, 5, 6}) == "0,2,4-6".
func Compose(indices []int) string {
	return strings.Join(Ranges(indices), ",")
}
