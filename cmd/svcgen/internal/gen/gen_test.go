package gen

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/svcgen/cmd/svcgen/internal/inputs"
)

const manifest = `entities:
  - name: Item
    annotations: ["@model"]
  - name: ItemsService
    annotations: ["@service", "@url https://api.example.com"]
    methods:
      - name: items
        returns: ServiceCall<[Item]>
        annotations: ["@get", "@url /items"]
`

const broken = `entities:
  - name: BrokenService
    annotations: ["@service"]
    methods:
      - name: items
        returns: "[String]"
        annotations: ["@get"]
`

func setup(t *testing.T, content string) (in, out string) {
	t.Helper()
	in, out = t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "api.yaml"), []byte(content), 0644))
	return in, out
}

func TestRun(t *testing.T) {
	in, out := setup(t, manifest)
	log := zerolog.Nop()

	cmd := &Cmd{Flags: inputs.Flags{
		InputService:  in,
		OutputService: filepath.Join(out, "Services"),
		OutputModel:   filepath.Join(out, "Models"),
		Project:       "Demo",
	}}
	require.NoError(t, cmd.Run(&log))

	data, err := os.ReadFile(filepath.Join(out, "Services", "ItemsServiceGen.swift"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "class ItemsServiceGen: ItemsService {")
	assert.Contains(t, string(data), "//  Demo\n")

	for _, name := range []string{"ServiceCall.swift", "AuthorizedServiceCall.swift", "ServiceDependency.swift", "ServiceLogFilter.swift"} {
		assert.FileExists(t, filepath.Join(out, "Models", name))
	}
}

func TestRun_DryRun(t *testing.T) {
	in, out := setup(t, manifest)
	log := zerolog.Nop()
	var buf bytes.Buffer

	cmd := &Cmd{
		Flags:  inputs.Flags{InputService: in, OutputService: out, OutputModel: out},
		DryRun: true,
		Out:    &buf,
	}
	require.NoError(t, cmd.Run(&log))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 5)
	assert.Equal(t, out+"/ItemsServiceGen.swift", lines[4])

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_FailureWritesNothing(t *testing.T) {
	in, out := setup(t, broken)
	var logs bytes.Buffer
	log := zerolog.New(&logs)

	cmd := &Cmd{Flags: inputs.Flags{InputService: in, OutputService: out, OutputModel: out}}
	err := cmd.Run(&log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 services failed")
	assert.Contains(t, logs.String(), `"code":"InvalidReturnType"`)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
