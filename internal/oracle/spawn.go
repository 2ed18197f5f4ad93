package oracle

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"swiftreduce/internal/request"
)

// buildFrontendCommand spawns the front-end binary directly, substituting
// $FILE in ri.CompilerArgs with sourcePath. Serialize only writes
// FileContents to sourcePath; it does not touch CompilerArgs, so the
// placeholder is still literally present here and must be substituted
// before the subject sees these arguments.
func (o *Oracle) buildFrontendCommand(ctx context.Context, ri *request.RequestInfo, sourcePath string) (*exec.Cmd, error) {
	if o.cfg.FrontendPath == "" {
		return nil, fmt.Errorf("%w: no front-end binary configured", ErrOracleTransient)
	}
	args := make([]string, len(ri.CompilerArgs))
	for i, a := range ri.CompilerArgs {
		if a == request.PlaceholderFile {
			a = sourcePath
		}
		args[i] = a
	}
	return exec.CommandContext(ctx, o.cfg.FrontendPath, args...), nil
}

// buildHelperCommand spawns the in-tree language-service helper, writing
// each serialized request to its own scratch file and passing them via
// repeatable --request-file flags, per spec.md §6.
func (o *Oracle) buildHelperCommand(ctx context.Context, requests []string) (*exec.Cmd, error) {
	if o.cfg.HelperPath == "" {
		return nil, fmt.Errorf("%w: no sourcekitd helper binary configured", ErrOracleTransient)
	}
	if o.cfg.SourcekitdPath == "" {
		return nil, fmt.Errorf("%w: no sourcekitd library path configured", ErrOracleTransient)
	}

	args := []string{"--sourcekitd", o.cfg.SourcekitdPath}
	if o.cfg.PluginPath != "" && o.cfg.ClientPluginPath != "" {
		args = append(args, "--sourcekit-plugin-path", o.cfg.PluginPath)
		args = append(args, "--sourcekit-client-plugin-path", o.cfg.ClientPluginPath)
	}

	for i, req := range requests {
		path := filepath.Join(o.scratch, fmt.Sprintf("request-%d-%d.yml", o.callIndex, i))
		if err := os.WriteFile(path, []byte(req), 0o644); err != nil {
			return nil, fmt.Errorf("%w: writing request file: %v", ErrOracleTransient, err)
		}
		args = append(args, "--request-file", path)
	}

	return exec.CommandContext(ctx, o.cfg.HelperPath, args...), nil
}
