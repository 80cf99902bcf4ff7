package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chat-animation/internal/domain/animation"
	"chat-animation/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--backend", "memory"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestShow_JSONAndYAML(t *testing.T) {
	out, err := run(t, "", "show", "sticker")
	require.NoError(t, err)
	settings, err := animation.DecodeCommonSettings([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, animation.TypeSticker, settings.Type())

	out, err = run(t, "", "show", "--format", "yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "smallMessageSettings:\n"), out)
	assert.Contains(t, out, "  type: Small\n")
	assert.Less(t, strings.Index(out, "smallMessageSettings"), strings.Index(out, "videoMessageSettings"))

	_, err = run(t, "", "show", "--format", "toml")
	assert.Error(t, err)

	_, err = run(t, "", "show", "gif")
	assert.Error(t, err)
}

func TestExport_WritesFile(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "", "--export-dir", dir, "export")
	require.NoError(t, err)

	path := filepath.Join(dir, services.ExportFileName)
	assert.Equal(t, path, strings.TrimSpace(out))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	_, err = animation.DecodeSettingsSet(data)
	assert.NoError(t, err)
}

func TestImport(t *testing.T) {
	doc, err := animation.NewSettingsSet().EncodeJSON()
	require.NoError(t, err)

	out, err := run(t, string(doc), "import", "-", "--type", "Voice")
	require.NoError(t, err)
	assert.Contains(t, out, "imported")

	out, err = run(t, string(doc), "import", "-", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing written")

	_, err = run(t, `{"smallMessageSettings":1}`, "import", "-")
	assert.Error(t, err)
}

func TestReset(t *testing.T) {
	out, err := run(t, "", "reset", "-t", "Emoji")
	require.NoError(t, err)
	assert.Contains(t, out, "defaults restored")

	_, err = run(t, "", "reset", "-t", "Nope")
	assert.Error(t, err)
}

func TestToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := run(t, "", "token")
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "secret")
	out, err := run(t, "", "token", "--editor", "ops")
	require.NoError(t, err)

	claims, err := services.NewAuthService("secret").ParseAccessToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Editor)
}

func TestJSONToYAML_KeepsOrder(t *testing.T) {
	out, err := jsonToYAML([]byte(`{"b":1,"a":{"y":true,"x":"s"}}`))
	require.NoError(t, err)
	assert.Equal(t, "b: 1\na:\n  y: true\n  x: s\n", string(out))
}
