package request

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Serialize writes FileContents to filePath and substitutes placeholders
// into each template, contextual templates first (in order) then the
// primary template, returning the ordered sequence ready for the caller to
// persist one-per-file and replay against the subject. It performs no I/O
// beyond that single file write — the oracle owns request-file placement.
func (r *RequestInfo) Serialize(filePath string) ([]string, error) {
	if err := os.WriteFile(filePath, []byte(r.FileContents), 0o644); err != nil {
		return nil, fmt.Errorf("%w: writing file contents: %v", ErrEncoding, err)
	}

	out := make([]string, 0, len(r.ContextualTemplates)+1)
	for _, tmpl := range r.ContextualTemplates {
		s, err := r.substitute(tmpl, filePath)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	primary, err := r.substitute(r.PrimaryTemplate, filePath)
	if err != nil {
		return nil, err
	}
	return append(out, primary), nil
}

func (r *RequestInfo) substitute(tmpl, filePath string) (string, error) {
	if tmpl == SentinelFrontendTemplate {
		return tmpl, nil
	}

	fileContentsJSON, err := json.Marshal(r.FileContents)
	if err != nil {
		return "", fmt.Errorf("%w: encoding file contents: %v", ErrEncoding, err)
	}

	argsBody, err := compilerArgsBody(r.CompilerArgs)
	if err != nil {
		return "", err
	}

	escapedPath := strings.ReplaceAll(filePath, `\`, `\\`)

	s := tmpl
	s = strings.ReplaceAll(s, PlaceholderOffset, strconv.Itoa(r.Offset))
	s = strings.ReplaceAll(s, PlaceholderCompilerArgs, argsBody)
	s = strings.ReplaceAll(s, PlaceholderFileContents, string(fileContentsJSON))
	s = strings.ReplaceAll(s, PlaceholderFile, escapedPath)
	return s, nil
}

// compilerArgsBody renders the JSON array body (without surrounding
// brackets) for splicing into $COMPILER_ARGS, one quoted argument per line
// to match the bracketed-block shape the parser recognizes on round-trip.
func compilerArgsBody(args []string) (string, error) {
	lines := make([]string, len(args))
	for i, a := range args {
		encoded, err := json.Marshal(a)
		if err != nil {
			return "", fmt.Errorf("%w: encoding compiler argument %q: %v", ErrEncoding, a, err)
		}
		suffix := ","
		if i == len(args)-1 {
			suffix = ""
		}
		lines[i] = string(encoded) + suffix
	}
	return strings.Join(lines, "\n"), nil
}
