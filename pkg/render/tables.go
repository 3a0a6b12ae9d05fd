package render

import (
	"fmt"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/blimu-dev/docs-gen/pkg/ir"
)

func status(p ir.Param) string {
	if p.Required {
		return "required"
	}
	return "optional"
}

func bodyTable(params []ir.Param) (string, error) {
	if len(params) == 0 {
		return "", nil
	}
	rows := make([][]string, 0, len(params))
	for _, p := range params {
		rows = append(rows, []string{cell(p.Name), cell(p.Type), status(p), cell(p.Description)})
	}
	return table([]string{"Parameter", "Type", "Status", "Description"}, rows)
}

func queryTable(params []ir.Param) (string, error) {
	if len(params) == 0 {
		return "", nil
	}
	rows := make([][]string, 0, len(params))
	for _, p := range params {
		rows = append(rows, []string{cell(p.Name), status(p), cell(p.Description)})
	}
	return table([]string{"Parameter", "Status", "Description"}, rows)
}

func table(header []string, rows [][]string) (string, error) {
	var b strings.Builder
	if err := md.NewMarkdown(&b).Table(md.TableSet{Header: header, Rows: rows}).Build(); err != nil {
		return "", fmt.Errorf("failed to build table: %w", err)
	}
	return strings.TrimSpace(b.String()), nil
}

var cellPipe = strings.NewReplacer(`\|`, `\|`, "|", `\|`)

// cell keeps a value inside one table cell: whitespace runs collapse to a
// single space and pipes are escaped.
func cell(s string) string {
	return cellPipe.Replace(strings.Join(strings.Fields(s), " "))
}
