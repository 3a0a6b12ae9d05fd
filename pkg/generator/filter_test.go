package generator

import (
	"testing"
)

func TestFilterAllows(t *testing.T) {
	tests := []struct {
		name        string
		tags        []string
		include     []string
		exclude     []string
		expected    bool
		description string
	}{
		{
			name:        "no filters - include all",
			tags:        []string{"users", "internal"},
			include:     []string{},
			exclude:     []string{},
			expected:    true,
			description: "When no filters are specified, all routes should be included",
		},
		{
			name:        "include filter matches first tag",
			tags:        []string{"users", "internal"},
			include:     []string{"users"},
			exclude:     []string{},
			expected:    true,
			description: "Route should be included when first tag matches include filter",
		},
		{
			name:        "include filter matches second tag",
			tags:        []string{"internal", "users"},
			include:     []string{"users"},
			exclude:     []string{},
			expected:    true,
			description: "Route should be included when any tag matches include filter",
		},
		{
			name:        "include filter matches none",
			tags:        []string{"internal", "admin"},
			include:     []string{"users"},
			exclude:     []string{},
			expected:    false,
			description: "Route should be excluded when no tags match include filter",
		},
		{
			name:        "exclude filter matches first tag",
			tags:        []string{"internal", "users"},
			include:     []string{},
			exclude:     []string{"internal"},
			expected:    false,
			description: "Route should be excluded when any tag matches exclude filter",
		},
		{
			name:        "exclude filter matches second tag",
			tags:        []string{"users", "internal"},
			include:     []string{},
			exclude:     []string{"internal"},
			expected:    false,
			description: "Route should be excluded when any tag matches exclude filter",
		},
		{
			name:        "include and exclude both match different tags",
			tags:        []string{"users", "internal"},
			include:     []string{"users"},
			exclude:     []string{"internal"},
			expected:    false,
			description: "Exclude should take precedence over include",
		},
		{
			name:        "include matches, exclude doesn't",
			tags:        []string{"users", "public"},
			include:     []string{"users"},
			exclude:     []string{"internal"},
			expected:    true,
			description: "Route should be included when include matches and exclude doesn't",
		},
		{
			name:        "regex patterns work",
			tags:        []string{"users_v1", "internal_api"},
			include:     []string{"^users_.*"},
			exclude:     []string{".*_api$"},
			expected:    false,
			description: "Regex patterns should work for both include and exclude",
		},
		{
			name:        "regex include matches",
			tags:        []string{"users_v1", "public"},
			include:     []string{"^users_.*"},
			exclude:     []string{},
			expected:    true,
			description: "Regex include patterns should work",
		},
		{
			name:        "multiple include patterns - any match",
			tags:        []string{"orders", "billing"},
			include:     []string{"users", "orders"},
			exclude:     []string{},
			expected:    true,
			description: "Route should be included if any tag matches any include pattern",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			filter, err := NewFilter(test.include, test.exclude)
			if err != nil {
				t.Fatalf("NewFilter(%v, %v) failed: %v", test.include, test.exclude, err)
			}

			result := filter.Allows(test.tags)
			if result != test.expected {
				t.Errorf("Allows(%v) with include %v, exclude %v = %v, expected %v\nDescription: %s",
					test.tags, test.include, test.exclude, result, test.expected, test.description)
			}
		})
	}
}

func TestNewFilterInvalidPattern(t *testing.T) {
	if _, err := NewFilter([]string{"("}, nil); err == nil {
		t.Error("expected error for invalid include pattern")
	}
	if _, err := NewFilter(nil, []string{"[a-"}); err == nil {
		t.Error("expected error for invalid exclude pattern")
	}
}

func TestNilFilterAllowsAll(t *testing.T) {
	var filter *Filter
	if !filter.Allows([]string{"anything"}) {
		t.Error("nil filter must allow every route")
	}
}
