// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateGraphYAML(t *testing.T) {
	path := writeFile(t, "graph.yaml", `
name: demo
edges:
  a: [b]
  b: [a, c]
`)
	assert.Equal(t, 0, validateGraph(path, false))
}

func TestValidateGraphJSON(t *testing.T) {
	path := writeFile(t, "graph.json", `{"name":"demo","edges":{"a":["b"],"b":["a"]}}`)
	assert.Equal(t, 0, validateGraph(path, false))
}

func TestValidateGraphMissingEdges(t *testing.T) {
	path := writeFile(t, "graph.yaml", "name: no edges\n")
	assert.Equal(t, 1, validateGraph(path, false))
}

func TestValidateGraphParseError(t *testing.T) {
	path := writeFile(t, "graph.json", "{broken")
	assert.Equal(t, 1, validateGraph(path, false))
}

func TestValidateGraphMissingFile(t *testing.T) {
	assert.Equal(t, 1, validateGraph(filepath.Join(t.TempDir(), "absent.yaml"), false))
}

func TestValidateGraphSelfLoops(t *testing.T) {
	path := writeFile(t, "graph.json", `{"name":"loop","edges":{"a":["a"],"b":["a"]}}`)

	// Accepted by default, rejected when the flag is set.
	assert.Equal(t, 0, validateGraph(path, false))
	assert.Equal(t, 1, validateGraph(path, true))

	clean := writeFile(t, "clean.json", `{"name":"ok","edges":{"a":["b"],"b":["a"]}}`)
	assert.Equal(t, 0, validateGraph(clean, true))
}

func TestSelfLoops(t *testing.T) {
	loops := selfLoops(map[string][]string{
		"a": {"b", "a"},
		"b": {"a"},
		"c": {"c"},
	})
	assert.Equal(t, []string{"a", "c"}, loops)

	assert.Empty(t, selfLoops(map[string][]string{"a": {"b"}}))
}

func TestValidateConfig(t *testing.T) {
	good := writeFile(t, "config.yaml", "listenAddr: \":9090\"\n")
	assert.Equal(t, 0, validateConfig(good))

	bad := writeFile(t, "bad.yaml", "listenAddr: \"9090\"\n")
	assert.Equal(t, 1, validateConfig(bad))
}
