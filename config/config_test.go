package config

import (
	"os"
	"path/filepath"
	"testing"

	assert "github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadBindingsAcrossMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "system.yaml", `
1.3.6.1.2.1.1.1.0:
  type: octetstring
  value: "test agent"
1.3.6.1.2.1.1.3.0:
  type: timeticks
  value: "12345"
`)
	writeFile(t, dir, "interfaces.yaml", `
1.3.6.1.2.1.2.1.0:
  type: integer
  value: "4"
`)

	cfg, err := Load(Paths{Bindings: dir}, nil)
	assert.NoError(t, err)
	assert.Len(t, cfg.Bindings, 3)
}

func TestLoadSkipsMalformedBindingsFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.yaml", `
1.3.6.1.2.1.1.1.0:
  type: octetstring
  value: "ok"
`)
	writeFile(t, dir, "bad.yaml", "not: [valid: yaml")

	cfg, err := Load(Paths{Bindings: dir}, nil)
	assert.NoError(t, err)
	assert.Len(t, cfg.Bindings, 1)
}

func TestLoadSkipsMalformedIndividualBinding(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mixed.yaml", `
1.3.6.1.2.1.1.1.0:
  type: octetstring
  value: "ok"
1.3.6.1.2.1.1.99.0:
  type: counter32
  value: "not-a-number"
`)
	cfg, err := Load(Paths{Bindings: dir}, nil)
	assert.NoError(t, err)
	assert.Len(t, cfg.Bindings, 1)
}

func TestLoadAgentConfigDefaultsWhenPathEmpty(t *testing.T) {
	cfg, err := Load(Paths{}, nil)
	assert.NoError(t, err)
	assert.Equal(t, defaultAgentConfig.Port, cfg.Agent.Port)
	assert.Equal(t, defaultAgentConfig.Community, cfg.Agent.Community)
}

func TestLoadAgentConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "agent.yaml", `
address: "127.0.0.1"
port: 1161
community: "private"
per_source_rate_limit: 10
log_level: "debug"
`)
	cfg, err := Load(Paths{Agent: path}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Agent.Address)
	assert.Equal(t, 1161, cfg.Agent.Port)
	assert.Equal(t, "private", cfg.Agent.Community)
	assert.Equal(t, 10, cfg.Agent.PerSourceRateLimit)
}

func TestConvertValueRejectsUnknownType(t *testing.T) {
	_, err := convertValue("mystery", "x")
	assert.Error(t, err)
}
