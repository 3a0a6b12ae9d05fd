package vuepress

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blimu-dev/docs-gen/pkg/document"
	"github.com/blimu-dev/docs-gen/pkg/examples"
	"github.com/blimu-dev/docs-gen/pkg/ir"
	"github.com/blimu-dev/docs-gen/pkg/render"
)

func fixture(t *testing.T) (*render.Renderer, *document.Document) {
	t.Helper()
	r, err := render.New(examples.NewRegistry(), "")
	require.NoError(t, err)
	doc := &document.Document{Groups: []document.Group{
		{Name: "", Endpoints: []*ir.Endpoint{{Output: "<!-- START_0 -->\nping\n<!-- END_0 -->"}}},
		{Name: "User Accounts", Endpoints: []*ir.Endpoint{{Output: "<!-- START_1 -->\nusers\n<!-- END_1 -->"}}},
		{Name: "user_accounts", Endpoints: []*ir.Endpoint{{Output: "<!-- START_2 -->\nmore\n<!-- END_2 -->"}}},
	}}
	return r, doc
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWritePerGroup(t *testing.T) {
	r, doc := fixture(t)
	opts := Options{Output: t.TempDir(), Folder: "/api/"}

	written, err := Write(r, doc, Content{Title: "Docs", Info: "# Info"}, opts, zerolog.Nop())
	require.NoError(t, err)

	dir := filepath.Join(opts.Output, "api")
	assert.Equal(t, []string{
		filepath.Join(dir, "index.md"),
		filepath.Join(dir, "general.md"),
		filepath.Join(dir, "user-accounts.md"),
		filepath.Join(dir, "user-accounts-2.md"),
	}, written)

	index := read(t, written[0])
	assert.Contains(t, index, "title: Docs")
	assert.Contains(t, index, "# Info")
	assert.NotContains(t, index, "START_1")

	page := read(t, written[2])
	assert.Contains(t, page, "title: User Accounts")
	assert.Contains(t, page, "# User Accounts")
	assert.Contains(t, page, "users")
	assert.NotContains(t, page, "START_2")

	assert.Contains(t, read(t, written[1]), "title: Docs")
}

func TestWriteSinglePage(t *testing.T) {
	r, doc := fixture(t)
	opts := Options{Output: t.TempDir(), Folder: "api", SinglePage: true}

	written, err := Write(r, doc, Content{}, opts, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, written, 1)

	index := read(t, written[0])
	assert.Contains(t, index, "title: API Reference")
	for _, id := range []string{"START_0", "START_1", "START_2"} {
		assert.Contains(t, index, id)
	}
}

func TestFileName(t *testing.T) {
	used := map[string]int{}
	assert.Equal(t, "orders.md", fileName("Orders", used))
	assert.Equal(t, "orders-2.md", fileName("orders", used))
	assert.Equal(t, "index-page.md", fileName("Index", used))
	assert.Equal(t, "general.md", fileName("", used))
}
