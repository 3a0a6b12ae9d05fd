// Package vuepress writes the rendered endpoints as VuePress pages. The
// pages are plain output and are never reconciled against earlier runs.
package vuepress

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/blimu-dev/docs-gen/pkg/document"
	"github.com/blimu-dev/docs-gen/pkg/render"
	"github.com/blimu-dev/docs-gen/pkg/snapshot"
	"github.com/blimu-dev/docs-gen/pkg/utils"
)

const fallbackSlug = "general"

// Options controls where pages go.
type Options struct {
	// Output is the VuePress docs root, Folder the directory inside it
	Output     string
	Folder     string
	SinglePage bool
}

// Content is the shared text placed on every page.
type Content struct {
	Title   string
	Info    string
	Prepend string
	Append  string
}

type frontmatter struct {
	Title        string `yaml:"title"`
	SidebarDepth int    `yaml:"sidebarDepth"`
}

// Dir returns the directory pages are written to.
func (o Options) Dir() string {
	return filepath.Join(o.Output, strings.Trim(o.Folder, `/\`))
}

// Write renders index.md and, unless SinglePage is set, one page per group.
// It returns the written paths in order.
func Write(r *render.Renderer, doc *document.Document, content Content, opts Options, logger zerolog.Logger) ([]string, error) {
	dir := opts.Dir()

	index := render.Page{Info: content.Info, Prepend: content.Prepend, Append: content.Append}
	if opts.SinglePage {
		index.Groups = doc.Groups
	}
	title := content.Title
	if title == "" {
		title = "API Reference"
	}
	written := make([]string, 0, len(doc.Groups)+1)
	path := filepath.Join(dir, "index.md")
	if err := writePage(r, path, title, index); err != nil {
		return written, err
	}
	written = append(written, path)
	logger.Info().Str("path", path).Msg("Wrote vuepress index")

	if opts.SinglePage {
		return written, nil
	}

	used := map[string]int{}
	for _, g := range doc.Groups {
		name := fileName(g.Name, used)
		page := render.Page{
			Info:    content.Info,
			Prepend: content.Prepend,
			Append:  content.Append,
			Groups:  []document.Group{g},
		}
		groupTitle := g.Name
		if groupTitle == "" {
			groupTitle = title
		}
		path := filepath.Join(dir, name)
		if err := writePage(r, path, groupTitle, page); err != nil {
			return written, err
		}
		written = append(written, path)
		logger.Info().Str("path", path).Str("group", g.Name).Msg("Wrote vuepress page")
	}
	logger.Warn().Int("pages", len(written)).Msg("Update the VuePress sidebar to include the generated pages")
	return written, nil
}

func writePage(r *render.Renderer, path, title string, page render.Page) error {
	fm, err := yaml.Marshal(frontmatter{Title: title, SidebarDepth: 2})
	if err != nil {
		return fmt.Errorf("failed to marshal vuepress frontmatter: %w", err)
	}
	page.Frontmatter = strings.TrimRight(string(fm), "\n")

	out, err := r.RenderDocument(page)
	if err != nil {
		return err
	}
	return snapshot.WriteFile(path, []byte(out))
}

// fileName derives a unique page name for a group; index is reserved.
func fileName(group string, used map[string]int) string {
	slug := utils.Slug(group, fallbackSlug)
	if slug == "index" {
		slug = "index-page"
	}
	used[slug]++
	if n := used[slug]; n > 1 {
		slug += "-" + strconv.Itoa(n)
	}
	return slug + ".md"
}
