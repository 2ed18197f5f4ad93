package srcreduce

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/swift"
)

// node types recognized by the swift tree-sitter grammar that the
// reduction passes key on. Named to match the grammar's own node-kind
// strings, not this package's vocabulary.
const (
	nodeImportDecl = "import_declaration"
	nodeFuncBody   = "function_body"
	nodeClassBody  = "class_body"
	nodeStatements = "statements"
)

// parsedFile holds a parsed tree alongside the exact byte buffer it was
// parsed from; tree-sitter node ranges are only meaningful against this
// buffer.
type parsedFile struct {
	tree   *sitter.Tree
	source []byte
}

func parseSource(ctx context.Context, source string) (*parsedFile, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(swift.GetLanguage())

	buf := []byte(source)
	tree, err := parser.ParseCtx(ctx, nil, buf)
	if err != nil {
		return nil, err
	}
	return &parsedFile{tree: tree, source: buf}, nil
}

func (f *parsedFile) close() {
	f.tree.Close()
}

func (f *parsedFile) text(n *sitter.Node) string {
	return n.Content(f.source)
}

// topLevelItems returns the root's named children: the top-level
// declarations and statements reducers 2 and 3 operate over.
func (f *parsedFile) topLevelItems() []*sitter.Node {
	root := f.tree.RootNode()
	items := make([]*sitter.Node, 0, root.NamedChildCount())
	for i := 0; i < int(root.NamedChildCount()); i++ {
		items = append(items, root.NamedChild(i))
	}
	return items
}

// functionBodies walks the whole tree collecting every function_body
// node, in visitor (pre-)order.
func (f *parsedFile) functionBodies() []*sitter.Node {
	var out []*sitter.Node
	walk(f.tree.RootNode(), func(n *sitter.Node) {
		if n.Type() == nodeFuncBody {
			out = append(out, n)
		}
	})
	return out
}

// memberOrStatementNodes walks the whole tree collecting every named
// child of a class_body or statements container — one candidate per
// member declaration or per statement, excluding the containers
// themselves.
func (f *parsedFile) memberOrStatementNodes() []*sitter.Node {
	var out []*sitter.Node
	walk(f.tree.RootNode(), func(n *sitter.Node) {
		if n.Type() != nodeClassBody && n.Type() != nodeStatements {
			return
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			out = append(out, n.NamedChild(i))
		}
	})
	return out
}

// firstImport returns the first import_declaration in source order, or
// nil if there is none.
func (f *parsedFile) firstImport() *sitter.Node {
	var found *sitter.Node
	walk(f.tree.RootNode(), func(n *sitter.Node) {
		if found == nil && n.Type() == nodeImportDecl {
			found = n
		}
	})
	return found
}

// importedModuleName extracts the module identifier from an
// import_declaration node's text (e.g. "import Foundation" -> "Foundation").
func (f *parsedFile) importedModuleName(importNode *sitter.Node) string {
	text := f.text(importNode)
	i := 0
	for i < len(text) && text[i] != ' ' {
		i++
	}
	for i < len(text) && text[i] == ' ' {
		i++
	}
	start := i
	for i < len(text) && text[i] != ' ' && text[i] != '\n' {
		i++
	}
	return text[start:i]
}

func walk(n *sitter.Node, visit func(*sitter.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		walk(n.NamedChild(i), visit)
	}
}
