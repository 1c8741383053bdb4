package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/ShayCichocki/agentbuilder/internal/config"
	"github.com/ShayCichocki/agentbuilder/internal/metrics"
	"github.com/ShayCichocki/agentbuilder/internal/orchestrator"
)

// cliRuntime holds the loaded config and the session a command works with.
type cliRuntime struct {
	cfg     *config.Config
	metrics *metrics.Metrics
	logger  *orchestrator.DebugLogger
	session *orchestrator.Session
}

func newRuntime() (*cliRuntime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	var logOut io.Writer
	if flagDebug || cfg.Log.Debug {
		logOut = os.Stderr
	}
	logger := orchestrator.NewDebugLogger(logOut)
	m := metrics.New()

	session := orchestrator.NewSession(
		orchestrator.WithConfig(cfg),
		orchestrator.WithMetrics(m),
		orchestrator.WithLogger(logger),
	)

	return &cliRuntime{cfg: cfg, metrics: m, logger: logger, session: session}, nil
}

func loadConfig() (*config.Config, error) {
	if flagConfigPath != "" {
		cfg, err := config.LoadFromPath(flagConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", flagConfigPath, err)
		}
		return cfg, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// serveMetrics exposes /metrics in the background when metrics.addr is set.
func (rt *cliRuntime) serveMetrics(ctx context.Context) {
	if rt.cfg.Metrics.Addr == "" {
		return
	}
	go func() {
		if err := rt.metrics.Serve(ctx, rt.cfg.Metrics.Addr); err != nil {
			log.Printf("[metrics] %v", err)
		}
	}()
	rt.logger.Log("[metrics] serving on %s/metrics", rt.cfg.Metrics.Addr)
}

// printStatus prints a colored symbol followed by a message.
func printStatus(w io.Writer, symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Fprintf(w, "%s %s\n", c.Sprint(symbol), message)
}
