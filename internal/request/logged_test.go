package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEnvelope = `key.request: source.request.codecomplete
key.sourcefile: /tmp/input.swift
key.offset: 42
key.compilerargs: [
  "-target",
  "x86_64-apple-macosx12.0",
  "-sdk",
  "/Applications/Xcode.app/Contents/Developer/Platforms/MacOSX.platform/Developer/SDKs/MacOSX.sdk"
]
`

func TestParseLoggedRequestExtractsOffsetFileAndArgs(t *testing.T) {
	// The source is longer than 42 bytes, so key.offset: 42 lies inside it
	// and is kept as-is rather than clamped to the source length.
	source := "let x = 1\nlet y = 2\nlet z = 3\nfunc f() { crash() }\n"
	ri, sourceFile, err := ParseLoggedRequest(sampleEnvelope, source)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/input.swift", sourceFile)
	assert.Equal(t, 42, ri.Offset)
	assert.Equal(t, []string{
		"-target",
		"x86_64-apple-macosx12.0",
		"-sdk",
		"/Applications/Xcode.app/Contents/Developer/Platforms/MacOSX.platform/Developer/SDKs/MacOSX.sdk",
	}, ri.CompilerArgs)
	assert.Equal(t, source, ri.FileContents)
	assert.Contains(t, ri.PrimaryTemplate, PlaceholderOffset)
	assert.Contains(t, ri.PrimaryTemplate, PlaceholderFile)
	assert.Contains(t, ri.PrimaryTemplate, PlaceholderCompilerArgs)
	assert.NotContains(t, ri.PrimaryTemplate, "42")
}

func TestParseLoggedRequestMissingSourceFileIsMalformed(t *testing.T) {
	_, _, err := ParseLoggedRequest("key.request: source.request.codecomplete\n", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRequest)
}

func TestParseLoggedRequestSourceFileAndNameMustAgree(t *testing.T) {
	envelope := "key.sourcefile: /tmp/a.swift\nkey.name: /tmp/b.swift\n"
	_, _, err := ParseLoggedRequest(envelope, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRequest)
}

func TestParseLoggedRequestFallsBackToNameKey(t *testing.T) {
	envelope := "key.name: /tmp/only.swift\n"
	_, sourceFile, err := ParseLoggedRequest(envelope, "body")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/only.swift", sourceFile)
}

func TestParseLoggedRequestDefaultsOffsetToZero(t *testing.T) {
	envelope := "key.sourcefile: /tmp/input.swift\n"
	ri, _, err := ParseLoggedRequest(envelope, "")
	require.NoError(t, err)
	assert.Equal(t, 0, ri.Offset)
}

func TestParseLoggedRequestInlineSourceTextIsSpliced(t *testing.T) {
	envelope := "key.sourcefile: /tmp/input.swift\nkey.sourcetext: \"let x = 1\\n\"\n"
	ri, _, err := ParseLoggedRequest(envelope, "")
	require.NoError(t, err)
	assert.Equal(t, "let x = 1\n", ri.FileContents)
	assert.Contains(t, ri.PrimaryTemplate, PlaceholderFileContents)
}
