package badger

import (
	"fmt"
	"regexp"
)

// searchPattern compiles a case-insensitive literal pattern for substring
// matching, escaping regex metacharacters in the query.
func searchPattern(query string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}
	return re, nil
}

// matchAny reports whether the pattern matches any of the values.
func matchAny(re *regexp.Regexp, values []string) bool {
	for _, v := range values {
		if re.MatchString(v) {
			return true
		}
	}
	return false
}

// pageSlice applies skip/limit pagination to a sorted result set and
// converts it to a pointer slice.
func pageSlice[T any](items []T, limit, skip int) []*T {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) {
		return []*T{}
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	result := make([]*T, len(items))
	for i := range items {
		result[i] = &items[i]
	}
	return result
}

// toPtrs converts a value slice returned by badgerhold into a pointer slice.
func toPtrs[T any](items []T) []*T {
	result := make([]*T, len(items))
	for i := range items {
		result[i] = &items[i]
	}
	return result
}
