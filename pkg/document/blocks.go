package document

import (
	"regexp"
	"strings"
)

var frontmatterPattern = regexp.MustCompile(`(?s)---(.*)---\s<!-- START_INFO -->`)

// StartMarker returns the opening delimiter of an endpoint block.
func StartMarker(id string) string {
	return "<!-- START_" + id + " -->"
}

// EndMarker returns the closing delimiter of an endpoint block.
func EndMarker(id string) string {
	return "<!-- END_" + id + " -->"
}

// Block is one delimited endpoint region found in a document.
type Block struct {
	// Full is the matched text including both markers
	Full string
	// Inner is the text between the markers
	Inner string
}

// ExtractBlock finds the first block delimited by id's markers. The match is
// non-greedy and spans newlines.
func ExtractBlock(doc, id string) (Block, bool) {
	pattern := regexp.MustCompile(`(?s)` + regexp.QuoteMeta(StartMarker(id)) + `(.*?)` + regexp.QuoteMeta(EndMarker(id)))
	m := pattern.FindStringSubmatch(doc)
	if m == nil {
		return Block{}, false
	}
	return Block{Full: m[0], Inner: m[1]}, true
}

// ExtractFrontmatter returns the frontmatter body of doc, without the
// surrounding "---" lines.
func ExtractFrontmatter(doc string) (string, bool) {
	m := frontmatterPattern.FindStringSubmatch(doc)
	if m == nil {
		return "", false
	}
	return strings.Trim(m[1], "\n"), true
}
