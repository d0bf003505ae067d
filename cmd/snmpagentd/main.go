// Command snmpagentd is the SNMPv1/v2c agent binary.
//
// It loads the static binding table and daemon settings from YAML (paths
// driven by environment variables, overridable by flags), binds a UDP
// socket, and serves Get/GetNext/GetBulk requests until interrupted
// (SIGINT/SIGTERM).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/oidwatch/snmpagent/agentd"
	"github.com/oidwatch/snmpagent/config"
	"github.com/oidwatch/snmpagent/snmp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "snmpagentd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		logLevel    string
		logFormat   string
		bindingsDir string
		agentPath   string
		addrFlag    string
		portFlag    int
		community   string
	)

	flag.StringVar(&logLevel, "log.level", "", "Log level: debug, info, warn, error (default: from agent config, else info)")
	flag.StringVar(&logFormat, "log.format", "", "Log format: json, text (default: from agent config, else text)")
	flag.StringVar(&bindingsDir, "config.bindings", "", "Override INPUT_SNMP_BINDINGS_DIRECTORY_PATH")
	flag.StringVar(&agentPath, "config.agent", "", "Override INPUT_SNMP_AGENT_CONFIG_PATH")
	flag.StringVar(&addrFlag, "listen.address", "", "Override the configured listen address")
	flag.IntVar(&portFlag, "listen.port", 0, "Override the configured listen port (0 = use config)")
	flag.StringVar(&community, "community", "", "Override the configured read community string")
	flag.Parse()

	paths := config.PathsFromEnv()
	if bindingsDir != "" {
		paths.Bindings = bindingsDir
	}
	if agentPath != "" {
		paths.Agent = agentPath
	}

	bootLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	loaded, err := config.Load(paths, bootLogger)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := logLevel
	if level == "" {
		level = loaded.Agent.LogLevel
	}
	format := logFormat
	if format == "" {
		format = loaded.Agent.LogFormat
	}
	logger, err := buildLogger(level, format)
	if err != nil {
		return err
	}

	address := loaded.Agent.Address
	if addrFlag != "" {
		address = addrFlag
	}
	port := loaded.Agent.Port
	if portFlag != 0 {
		port = portFlag
	}
	comm := loaded.Agent.Community
	if community != "" {
		comm = community
	}

	table := agentd.TableFunc(func() []snmp.VarBinding {
		return loaded.Bindings
	})

	hooks := agentd.NewLoggingHooks(logger, level == "debug")

	opts := []agentd.Option{
		agentd.Address(address),
		agentd.Port(port),
		agentd.Community(comm),
		agentd.WithHooks(hooks),
	}
	if loaded.Agent.PerSourceRateLimit > 0 {
		opts = append(opts, agentd.PerSourceRateLimit(loaded.Agent.PerSourceRateLimit))
	}
	if loaded.Agent.RateLimitWindow > 0 {
		opts = append(opts, agentd.RateLimitWindow(loaded.Agent.RateLimitWindow))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := agentd.Listen(ctx, table, opts...)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	logger.Info("snmpagentd: running", "address", address, "port", port, "bindings", len(loaded.Bindings))

	<-ctx.Done()
	logger.Info("snmpagentd: received shutdown signal")

	return srv.Close()
}

func buildLogger(level, format string) (*slog.Logger, error) {
	if level == "" {
		level = "info"
	}
	if format == "" {
		format = "text"
	}

	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q (expected debug|info|warn|error)", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q (expected json|text)", format)
	}
	return slog.New(handler), nil
}
