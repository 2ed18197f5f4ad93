package srcreduce

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"swiftreduce/internal/request"
)

// stripComments removes every line, block, and doc comment from the
// whole file in a single pass (spec.md §4.D step 7). Idempotent: a
// second pass finds no comment nodes and is a no-op.
func stripComments(ctx context.Context, o Invoker, ri *request.RequestInfo) (*request.RequestInfo, error) {
	pf, err := parseSource(ctx, ri.FileContents)
	if err != nil {
		return ri, err
	}
	defer pf.close()

	var edits []request.SourceEdit
	walk(pf.tree.RootNode(), func(n *sitter.Node) {
		if strings.Contains(n.Type(), "comment") {
			edits = append(edits, request.SourceEdit{
				Start:   int(n.StartByte()),
				End:     int(n.EndByte()),
				NewText: "",
			})
		}
	})

	next, _, err := attempt(ctx, o, ri, edits)
	return next, err
}
