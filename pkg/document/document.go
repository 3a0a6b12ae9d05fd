// Package document groups rendered endpoints into a document and reconciles
// a freshly rendered document against the previously published one.
package document

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/blimu-dev/docs-gen/pkg/ir"
)

// Group is a named run of endpoints. The empty name is the ungrouped section.
type Group struct {
	Name      string
	Endpoints []*ir.Endpoint
}

// Document is the ordered set of groups that make up one output file.
type Document struct {
	Groups []Group
}

// Aggregate groups endpoints by their group label. Groups are ordered with
// numeric-aware collation for locale; endpoints keep their input order
// inside a group.
func Aggregate(endpoints []*ir.Endpoint, locale string) *Document {
	index := make(map[string]int)
	var groups []Group
	for _, ep := range endpoints {
		i, ok := index[ep.Group]
		if !ok {
			i = len(groups)
			index[ep.Group] = i
			groups = append(groups, Group{Name: ep.Group})
		}
		groups[i].Endpoints = append(groups[i].Endpoints, ep)
	}

	c := newCollator(locale)
	sort.SliceStable(groups, func(i, j int) bool {
		return c.CompareString(groups[i].Name, groups[j].Name) < 0
	})

	return &Document{Groups: groups}
}

// Endpoints returns every endpoint in document order.
func (d *Document) Endpoints() []*ir.Endpoint {
	var out []*ir.Endpoint
	for _, g := range d.Groups {
		out = append(out, g.Endpoints...)
	}
	return out
}

func newCollator(locale string) *collate.Collator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return collate.New(tag, collate.Numeric)
}
