package generator

import (
	"fmt"
	"regexp"
)

// Filter selects routes by their group tags using include and exclude
// regular expressions.
type Filter struct {
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

// NewFilter compiles include and exclude patterns
func NewFilter(include, exclude []string) (*Filter, error) {
	inc, exc, err := compileTagFilters(include, exclude)
	if err != nil {
		return nil, err
	}
	return &Filter{include: inc, exclude: exc}, nil
}

// Allows reports whether a route with tags passes the filter. A nil filter
// allows everything.
func (f *Filter) Allows(tags []string) bool {
	if f == nil {
		return true
	}
	return shouldIncludeOperation(tags, f.include, f.exclude)
}

// compileTagFilters compiles regex patterns for tag filtering
func compileTagFilters(include, exclude []string) ([]*regexp.Regexp, []*regexp.Regexp, error) {
	inc := make([]*regexp.Regexp, 0, len(include))
	for _, p := range include {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid includeGroups pattern %q: %w", p, err)
		}
		inc = append(inc, r)
	}
	exc := make([]*regexp.Regexp, 0, len(exclude))
	for _, p := range exclude {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid excludeGroups pattern %q: %w", p, err)
		}
		exc = append(exc, r)
	}
	return inc, exc, nil
}

// shouldIncludeOperation determines if a route should be included based on its tags
func shouldIncludeOperation(tags []string, include, exclude []*regexp.Regexp) bool {
	// If no include patterns, assume all tags are initially included
	included := len(include) == 0

	// A route is included if ANY of its tags match ANY include pattern
	for _, tag := range tags {
		for _, r := range include {
			if r.MatchString(tag) {
				included = true
				break
			}
		}
		if included {
			break
		}
	}

	if !included {
		return false
	}

	// A route is excluded if ANY of its tags match ANY exclude pattern
	for _, tag := range tags {
		for _, r := range exclude {
			if r.MatchString(tag) {
				return false
			}
		}
	}

	return true
}
