// Package utils holds small text helpers shared by the output writers.
package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)

// RemoveAccents removes accents from a string, converting accented characters to their base forms
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// SplitCamelCase splits a camelCase or PascalCase string into words
func SplitCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var parts []string
	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		isNewWord := false
		if i > 0 && isUppercase(r) {
			if !isUppercase(runes[i-1]) {
				isNewWord = true
			} else if i < len(runes)-1 && !isUppercase(runes[i+1]) {
				// "XMLHttp" -> "XML", "Http"
				isNewWord = true
			}
		}

		if isNewWord && current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

func isUppercase(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// Slug converts a group name into a kebab-case file name stem. Names with
// no usable characters become fallback.
func Slug(s, fallback string) string {
	s = RemoveAccents(strings.TrimSpace(s))

	var words []string
	for _, part := range nonAlnum.Split(s, -1) {
		for _, w := range SplitCamelCase(part) {
			words = append(words, strings.ToLower(w))
		}
	}
	if len(words) == 0 {
		return fallback
	}
	return strings.Join(words, "-")
}
