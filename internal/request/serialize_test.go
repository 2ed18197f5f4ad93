package request

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeSubstitutesAllPlaceholders(t *testing.T) {
	ri := &RequestInfo{
		PrimaryTemplate: "key.sourcefile: " + PlaceholderFile + "\nkey.offset: " + PlaceholderOffset +
			"\nkey.compilerargs: [\n" + PlaceholderCompilerArgs + "\n]\nkey.sourcetext: " + PlaceholderFileContents + "\n",
		Offset:       5,
		CompilerArgs: []string{"-a", "-b"},
		FileContents: "let x = 1\n",
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "input.swift")

	out, err := ri.Serialize(path)
	require.NoError(t, err)
	require.Len(t, out, 1)

	rendered := out[0]
	assert.Contains(t, rendered, path)
	assert.Contains(t, rendered, "key.offset: 5")
	assert.Contains(t, rendered, `"-a",`)
	assert.Contains(t, rendered, `"-b"`)
	assert.Contains(t, rendered, `"let x = 1\n"`)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "let x = 1\n", string(written))
}

func TestSerializeOrdersContextualTemplatesBeforePrimary(t *testing.T) {
	ri := &RequestInfo{
		ContextualTemplates: []string{"open: " + PlaceholderFile, "prime: " + PlaceholderOffset},
		PrimaryTemplate:     "primary: " + PlaceholderOffset,
		Offset:              0,
		FileContents:        "",
	}

	dir := t.TempDir()
	out, err := ri.Serialize(filepath.Join(dir, "f.swift"))
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.Contains(t, out[0], "open:")
	assert.Contains(t, out[1], "prime:")
	assert.Contains(t, out[2], "primary:")
}

func TestSerializeFrontendSentinelPassesThroughVerbatim(t *testing.T) {
	ri := &RequestInfo{
		PrimaryTemplate: SentinelFrontendTemplate,
		CompilerArgs:    []string{"-frontend"},
		FileContents:    "",
	}

	dir := t.TempDir()
	out, err := ri.Serialize(filepath.Join(dir, "f.swift"))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, SentinelFrontendTemplate, out[0])
}

func TestParseAndSerializeRoundTripsOffsetArgsAndContents(t *testing.T) {
	ri, _, err := ParseLoggedRequest(sampleEnvelope, "let x = 1\n")
	require.NoError(t, err)

	dir := t.TempDir()
	rendered, err := ri.Serialize(filepath.Join(dir, "input.swift"))
	require.NoError(t, err)
	require.Len(t, rendered, 1)

	reparsed, _, err := ParseLoggedRequest(rendered[0], "let x = 1\n")
	require.NoError(t, err)

	assert.Equal(t, ri.Offset, reparsed.Offset)
	assert.Equal(t, ri.CompilerArgs, reparsed.CompilerArgs)
	assert.Equal(t, ri.FileContents, reparsed.FileContents)
}
