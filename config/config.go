// Package config provides YAML configuration loading for the SNMP agent.
//
// It reads two directory/file locations (driven by environment variables)
// and produces a LoadedConfig value consumed by cmd/snmpagentd:
//
//	INPUT_SNMP_BINDINGS_DIRECTORY_PATH → the static binding table
//	INPUT_SNMP_AGENT_CONFIG_PATH       → listener/auth/rate-limit settings
package config

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oidwatch/snmpagent/snmp"
)

// Paths holds the configuration file/directory locations.
type Paths struct {
	Bindings string // INPUT_SNMP_BINDINGS_DIRECTORY_PATH
	Agent    string // INPUT_SNMP_AGENT_CONFIG_PATH
}

// PathsFromEnv reads each path from its environment variable, falling back
// to the documented default when the variable is unset or empty.
func PathsFromEnv() Paths {
	return Paths{
		Bindings: envOr("INPUT_SNMP_BINDINGS_DIRECTORY_PATH", "/etc/snmpagent/bindings"),
		Agent:    envOr("INPUT_SNMP_AGENT_CONFIG_PATH", "/etc/snmpagent/agent.yaml"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// AgentConfig carries the daemon settings that are out of the core's scope:
// where to listen, the community string, and per-source rate limiting.
type AgentConfig struct {
	Address            string        `yaml:"address"`
	Port               int           `yaml:"port"`
	Community          string        `yaml:"community"`
	PerSourceRateLimit int           `yaml:"per_source_rate_limit"`
	RateLimitWindow    time.Duration `yaml:"rate_limit_window"`
	LogLevel           string        `yaml:"log_level"`
	LogFormat          string        `yaml:"log_format"` // "text" or "json"
}

var defaultAgentConfig = AgentConfig{
	Address:            "",
	Port:               161,
	Community:          "public",
	PerSourceRateLimit: 50,
	RateLimitWindow:    time.Second,
	LogLevel:           "info",
	LogFormat:          "text",
}

// LoadedConfig is the fully parsed configuration for the agent process.
type LoadedConfig struct {
	Bindings []snmp.VarBinding
	Agent    AgentConfig
}

// Load reads the agent settings file and every YAML file under the bindings
// directory, returning a fully resolved LoadedConfig. Malformed binding
// files are skipped with a warning rather than failing the whole load,
// mirroring how a partially-populated MIB tree should degrade; a malformed
// or unreadable agent settings file is fatal, since it controls the socket
// the agent binds to.
func Load(paths Paths, logger *slog.Logger) (*LoadedConfig, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(noopWriter{}, nil))
	}

	agentCfg, err := loadAgentConfig(paths.Agent, logger)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	bindings, err := loadBindings(paths.Bindings, logger)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &LoadedConfig{Bindings: bindings, Agent: agentCfg}, nil
}

func loadAgentConfig(path string, logger *slog.Logger) (AgentConfig, error) {
	cfg := defaultAgentConfig
	if path == "" {
		return cfg, nil
	}
	if err := decodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			logger.Debug("config: no agent settings file, using defaults", "path", path)
			return defaultAgentConfig, nil
		}
		return cfg, fmt.Errorf("load agent config %q: %w", path, err)
	}
	return cfg, nil
}

// rawBindingFile maps a dotted OID string to its typed value.
type rawBindingFile map[string]rawBindingEntry

type rawBindingEntry struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
}

func loadBindings(dir string, logger *slog.Logger) ([]snmp.VarBinding, error) {
	var bindings []snmp.VarBinding
	files, err := yamlFiles(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return bindings, nil
		}
		return bindings, fmt.Errorf("list bindings dir %q: %w", dir, err)
	}

	for _, path := range files {
		var raw rawBindingFile
		if err := decodeFile(path, &raw); err != nil {
			logger.Warn("config: skip malformed bindings file", "file", path, "error", err.Error())
			continue
		}
		for oidText, entry := range raw {
			vb, err := convertBinding(oidText, entry)
			if err != nil {
				logger.Warn("config: skip malformed binding", "file", path, "oid", oidText, "error", err.Error())
				continue
			}
			bindings = append(bindings, vb)
		}
		logger.Debug("config: loaded bindings file", "file", path, "count", len(raw))
	}
	return bindings, nil
}

// yamlFiles returns all *.yml / *.yaml files under dir, sorted by path.
func yamlFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(p))
		if ext == ".yml" || ext == ".yaml" {
			paths = append(paths, p)
		}
		return nil
	})
	return paths, err
}

// decodeFile opens path and unmarshals the YAML content into out.
func decodeFile(path string, out interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(false) // be lenient - extra keys are fine
	return dec.Decode(out)
}

type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }
