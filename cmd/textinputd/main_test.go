package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifest = `
text_input:
  - name: "Hallway greeting"
    id: greeting
    mode: string
    on_value:
      - logger.log: "greeting is {{.x}}"
  - name: "Status note"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func execute(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("TEXTINPUT_CONFIG", "")
	assert.Equal(t, defaultConfigPath, getConfigPath(""))

	t.Setenv("TEXTINPUT_CONFIG", "/etc/textinput/config.yaml")
	assert.Equal(t, "/etc/textinput/config.yaml", getConfigPath(""))
	assert.Equal(t, "flag.yaml", getConfigPath("flag.yaml"))
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"run", "validate"}, names)
}

func TestValidate_PrintsResolvedManifest(t *testing.T) {
	path := writeFile(t, t.TempDir(), "entities.yaml", testManifest)

	out, err := execute(t, context.Background(), "validate", path)
	require.NoError(t, err)

	assert.Contains(t, out, "text_input:")
	assert.Contains(t, out, "id: greeting")
	assert.Contains(t, out, "mode: STRING")
	assert.Contains(t, out, "mode: AUTO")
	assert.Contains(t, out, "id: text_input_1")
	assert.NotContains(t, out, "mqtt_id")
}

func TestValidate_MQTTFeature(t *testing.T) {
	path := writeFile(t, t.TempDir(), "entities.yaml", testManifest)

	out, err := execute(t, context.Background(), "validate", "--mqtt", path)
	require.NoError(t, err)
	assert.Contains(t, out, "mqtt_id: mqtt_text_input")
}

func TestValidate_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		manifest string
		wantErr  string
	}{
		{
			name:     "secret mode",
			manifest: "text_input:\n  - name: a\n    mode: SECRET\n",
			wantErr:  "mode",
		},
		{
			name:     "missing name",
			manifest: "text_input:\n  - mode: AUTO\n",
			wantErr:  "name",
		},
		{
			name:     "mqtt_id without feature",
			manifest: "text_input:\n  - name: a\n    mqtt_id: x\n",
			wantErr:  "mqtt_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "bad.yaml", tt.manifest)
			_, err := execute(t, context.Background(), "validate", path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := execute(t, context.Background(), "validate", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = execute(t, context.Background(), "validate")
	assert.Error(t, err, "manifest argument is required")
}

func TestRun_InvalidConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := execute(t, ctx, "run", "--config", "/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func nodeConfig(dir, manifestPath string) string {
	return `
node:
  name: "test-node"
database:
  path: "` + filepath.Join(dir, "data", "textinput.db") + `"
  wal_mode: true
  busy_timeout: 5
mqtt:
  enabled: false
api:
  enabled: false
influxdb:
  enabled: false
logging:
  level: error
  format: text
  output: stderr
entities:
  path: "` + manifestPath + `"
`
}

func TestRun_StartsAndStops(t *testing.T) {
	dir := t.TempDir()
	manifestPath := writeFile(t, dir, "entities.yaml", testManifest)
	configPath := writeFile(t, dir, "config.yaml", nodeConfig(dir, manifestPath))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, runNode(ctx, configPath))
	assert.FileExists(t, filepath.Join(dir, "data", "textinput.db"))
}

func TestRun_InvalidManifest(t *testing.T) {
	dir := t.TempDir()
	manifestPath := writeFile(t, dir, "entities.yaml", "text_input:\n  - mode: SECRET\n")
	configPath := writeFile(t, dir, "config.yaml", nodeConfig(dir, manifestPath))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := runNode(ctx, configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading entity manifest")
}
