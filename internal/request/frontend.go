package request

import (
	"bufio"
	"context"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
)

// frontendDroppedFlags consumes the flag plus its following argument.
var frontendDroppedFlags = map[string]bool{
	"-supplementary-output-file-map":      true,
	"-output-filelist":                    true,
	"-index-unit-output-path-filelist":    true,
}

// frontendDroppedBareFlags are dropped without consuming a following
// argument.
var frontendDroppedBareFlags = map[string]bool{
	"-index-system-modules": true,
}

// ParseFrontendArgs constructs a RequestInfo in front-end mode from a raw
// swift-frontend command-line argument list, per spec.md §4.A. Every
// "-filelist <path>" pair is replaced in place by the newline-split
// contents of <path>, read concurrently (order preserved) since a large
// invocation may reference several filelists.
func ParseFrontendArgs(ctx context.Context, args []string) (*RequestInfo, error) {
	filelistPaths := make([]string, len(args))
	for i, a := range args {
		if a == "-filelist" && i+1 < len(args) {
			filelistPaths[i] = args[i+1]
		}
	}

	contents := make([][]string, len(args))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range filelistPaths {
		if path == "" {
			continue
		}
		i, path := i, path
		g.Go(func() error {
			lines, err := readFilelist(gctx, path)
			if err != nil {
				return err
			}
			contents[i] = lines
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []string
	for i := 0; i < len(args); i++ {
		a := args[i]

		if frontendDroppedBareFlags[a] {
			continue
		}
		if frontendDroppedFlags[a] {
			i++ // also skip its argument
			continue
		}
		if a == "-filelist" && i+1 < len(args) {
			out = append(out, contents[i]...)
			i++ // skip the path argument too
			continue
		}
		out = append(out, a)
	}

	return &RequestInfo{
		PrimaryTemplate: SentinelFrontendTemplate,
		CompilerArgs:    out,
		FileContents:    "",
	}, nil
}

func readFilelist(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
