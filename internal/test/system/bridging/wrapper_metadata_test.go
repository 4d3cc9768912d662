package system

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/nodebridge/internal/app"
	"github.com/specialistvlad/nodebridge/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

// Test for: wrapper-level metadata survives re-encoding untouched
func TestBridging_WrapperMetadataIsPreserved(t *testing.T) {
	// --- Arrange ---
	hcl := `
metaData = {
  beacon = "screen-1"
  tags   = ["intro", "${var.lang}"]
}

asset {
  id    = "welcome"
  type  = "text"
  value = upper("hello")
}
`
	file := testutil.WriteFile(t, t.TempDir(), "welcome.hcl", hcl)
	a, out, _ := setupApp(t, app.Config{
		Paths:  []string{file},
		Format: "yaml",
		Vars:   map[string]string{"lang": "en"},
	})

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	want := map[string]any{
		"asset": map[string]any{"id": "welcome", "type": "text", "value": "HELLO"},
		"metaData": map[string]any{
			"beacon": "screen-1",
			"tags":   []any{"intro", "en"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

// Test for: a function reference is bridged but cannot be put on the wire
func TestBridging_LuaFunctionReferenceIsNotEncoded(t *testing.T) {
	// --- Arrange ---
	lua := `
local function onClick() error("must not be called") end
return {
  asset = { id = "next", type = "action", onClick = onClick },
}
`
	file := testutil.WriteFile(t, t.TempDir(), "action.lua", lua)
	a, out, logs := setupApp(t, app.Config{Paths: []string{file}})

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "action.lua: failed to encode")
	assert.NotContains(t, err.Error(), "must not be called")
	assert.NotContains(t, logs.String(), "Asset inspected.")
	assert.Empty(t, out.String())
}

// Test for: identical content yields identical fingerprints across runtimes
func TestBridging_FingerprintIsRuntimeIndependent(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	hclFile := testutil.WriteFile(t, dir, "a.hcl", `
asset {
  id   = "same"
  type = "text"
}
`)
	luaFile := testutil.WriteFile(t, dir, "a.lua", `return { asset = { type = "text", id = "same" } }`)
	a, _, _ := setupApp(t, app.Config{Paths: []string{dir}})

	// --- Act ---
	results, err := a.InspectAll(context.Background(), []string{hclFile, luaFile})

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, results[0].Fingerprint, results[1].Fingerprint)
	assert.Equal(t, string(results[0].Document), string(results[1].Document))
}
