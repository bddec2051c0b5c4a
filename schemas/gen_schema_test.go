package schemas_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratedSchema(t *testing.T) {
	t.Parallel()

	outPath := filepath.Join(t.TempDir(), "r2g2-manifest.schema.json")

	cmd := exec.Command("go", "run", "gen_schema.go", outPath)
	cmd.Dir = "."

	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "generator output:\n%s", out)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))

	assert.Equal(t, "r2g2 package manifest", schema["title"])

	properties, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, properties, "functions")
}
