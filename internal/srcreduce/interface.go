package srcreduce

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"swiftreduce/internal/oracle"
	"swiftreduce/internal/request"
)

const interfaceRequestTemplate = "key.request: source.request.editor.open.interface\n" +
	"key.name: %s\n" +
	"key.compilerargs: [\n" +
	request.PlaceholderCompilerArgs + "\n" +
	"]\n"

// extractModuleInterface sends a synthesized "open interface" request for
// moduleName and parses the generated interface text out of the
// response, per spec.md §4.D.2. It fails with errInterfaceUnavailable at
// any step — that error is always locally absorbed by the caller.
func extractModuleInterface(ctx context.Context, o Invoker, moduleName string, compilerArgs []string) (string, error) {
	synth := &request.RequestInfo{
		PrimaryTemplate: fmt.Sprintf(interfaceRequestTemplate, moduleName),
		CompilerArgs:    compilerArgs,
	}

	result, err := o.Invoke(ctx, synth)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errInterfaceUnavailable, err)
	}
	if result.Verdict != oracle.Success {
		return "", errInterfaceUnavailable
	}

	text, err := parseSourcetextLine(result.Output)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errInterfaceUnavailable, err)
	}
	return text, nil
}

func parseSourcetextLine(output string) (string, error) {
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "key.sourcetext:") {
			continue
		}
		value := strings.TrimSpace(strings.TrimPrefix(trimmed, "key.sourcetext:"))
		value = strings.TrimSuffix(value, ",")
		value = filterControlBytes(value)

		var decoded string
		if err := json.Unmarshal([]byte(value), &decoded); err != nil {
			return "", fmt.Errorf("decoding key.sourcetext value: %w", err)
		}
		return decoded, nil
	}
	return "", fmt.Errorf("no key.sourcetext line in response")
}

func filterControlBytes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// fallbackTargetSDKArgs extracts only the -target and -sdk flag/value
// pairs from args, per spec.md §4.D step 6's fallback argument list.
func fallbackTargetSDKArgs(args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		if (args[i] == "-target" || args[i] == "-sdk") && i+1 < len(args) {
			out = append(out, args[i], args[i+1])
			i++
		}
	}
	return out
}
