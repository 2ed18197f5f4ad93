package srcreduce

import "strings"

// keepSet is the per-reducer memory of canonical node shapes already
// attempted, per spec.md §4.D. Canonicalization is whitespace-trimmed
// source text; two textually identical nodes at different positions are
// treated as the same candidate.
type keepSet map[string]bool

func canonicalize(text string) string {
	return strings.TrimSpace(text)
}

func (k keepSet) contains(text string) bool {
	return k[canonicalize(text)]
}

func (k keepSet) add(text string) {
	k[canonicalize(text)] = true
}
