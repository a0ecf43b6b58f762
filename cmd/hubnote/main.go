package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hubnote-dev/hubnote/internal/config"
	"github.com/hubnote-dev/hubnote/internal/dispatch"
	"github.com/hubnote-dev/hubnote/internal/doctor"
	"github.com/hubnote-dev/hubnote/internal/github"
	"github.com/hubnote-dev/hubnote/internal/log"
	"github.com/hubnote-dev/hubnote/internal/misskey"
	"github.com/hubnote-dev/hubnote/internal/webhook"
	"gopkg.in/yaml.v3"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "system":
		os.Exit(runSystemNoun(args))
	case "config":
		os.Exit(runConfigNoun(args))

	// --- ROOT ALIASES ---
	case "start":
		os.Exit(runStart(args))
	case "version":
		fmt.Printf("hubnote version %s\n", version)
		os.Exit(0)
	case "help", "--help", "-h":
		printUsage()
		os.Exit(0)

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`hubnote - GitHub webhook to Misskey note bridge

Usage:
  hubnote <noun> <action> [flags]

System Commands:
  system start      Start the webhook bridge in foreground

Config Commands:
  config check      Validate configuration
  config lock       Authorize current config (update integrity hash)
  config show       Show resolved configuration

General:
  version           Show version information
  help              Show this help message
`)
}

// --- NOUN DISPATCHERS ---

func runSystemNoun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: hubnote system <action>")
		fmt.Fprintln(os.Stderr, "Actions: start")
		return 1
	}

	switch args[0] {
	case "start":
		return runStart(args[1:])
	case "help", "--help", "-h":
		fmt.Println("Usage: hubnote system start [--config PATH]")
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown system action: %s\n", args[0])
		return 1
	}
}

func runConfigNoun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: hubnote config <action> [flags]")
		fmt.Fprintln(os.Stderr, "Actions: check, lock, show")
		return 1
	}

	switch args[0] {
	case "check":
		return runConfigCheck(args[1:])
	case "lock":
		return runConfigLock(args[1:])
	case "show":
		return runConfigShow(args[1:])
	case "help", "--help", "-h":
		fmt.Println("Usage: hubnote config <check|lock|show> [--config PATH]")
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown config action: %s\n", args[0])
		return 1
	}
}

// --- ACTION IMPLEMENTATIONS ---

func runStart(args []string) int {
	fs := flag.NewFlagSet("start", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse flags: %v\n", err)
		return 1
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log.Setup(cfg.Service.LogLevel)
	logger := log.WithComponent("main")
	logger.Info("hubnote starting", "version", version, "instance", cfg.Misskey.URL)

	statusClient, err := github.NewStatusClient(cfg.Misskey.Timeout, cfg.Misskey.Proxy)
	if err != nil {
		logger.Error("failed to build status client", "error", err)
		return 1
	}

	publisher, err := misskey.New(cfg.Misskey.URL, cfg.Misskey.Token, cfg.Misskey.Timeout, cfg.Misskey.Proxy)
	if err != nil {
		logger.Error("failed to build publisher", "error", err)
		return 1
	}

	disp := dispatch.New(cfg.Hooks, publisher, statusClient, log.WithComponent("dispatch"))

	enabled := 0
	for _, e := range github.SupportedEvents() {
		if disp.Handles(string(e)) {
			enabled++
		}
	}
	logger.Info("event handlers registered", "enabled", enabled, "supported", len(github.SupportedEvents()))

	server, err := webhook.New(webhook.Config{
		Listen:         cfg.Service.Listen,
		Secret:         cfg.GitHub.WebhookSecret,
		AllowedSources: cfg.GitHub.AllowedSources,
		MaxBodySize:    cfg.Service.MaxBodySize,
	}, disp, log.WithComponent("webhook"))
	if err != nil {
		logger.Error("failed to configure webhook server", "error", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && err != context.Canceled {
			errCh <- err
		}
	}()

	logger.Info("hubnote running (press Ctrl+C to stop)")

	exitCode := 0
	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	case err := <-errCh:
		logger.Error("webhook server failed", "error", err)
		cancel()
		exitCode = 1
	}

	// Let detached publishes drain before the process exits.
	disp.Wait()
	logger.Info("hubnote stopped")
	return exitCode
}

func runConfigCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	jsonOut := fs.Bool("json", false, "Output in JSON")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config load error: %v\n", err)
		return 1
	}

	result := doctor.New(cfg).Validate()

	if *jsonOut {
		out, err := doctor.FormatJSON(result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "JSON format error: %v\n", err)
			return 1
		}
		fmt.Println(out)
	} else {
		fmt.Print(doctor.FormatHuman(result))
	}

	if !result.Valid {
		return 1
	}
	return 0
}

func runConfigLock(args []string) int {
	fs := flag.NewFlagSet("lock", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	dryRun := fs.Bool("dry-run", false, "Compute hash without writing .checksums")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}

	path := *configPath
	if path == "" {
		discovered, err := config.DiscoverConfigPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to discover config: %v\n", err)
			return 1
		}
		path = discovered
	}

	checksumPath, err := config.GenerateChecksums(path, *dryRun)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to lock config: %v\n", err)
		return 1
	}

	if *dryRun {
		fmt.Printf("Dry run: would write %s\n", checksumPath)
	} else {
		fmt.Printf("Locked configuration: %s\n", checksumPath)
	}
	return 0
}

func runConfigShow(args []string) int {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	jsonOut := fs.Bool("json", false, "Output in structured JSON format")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse flags: %v\n", err)
		return 1
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Load error: %v\n", err)
		return 1
	}

	if *jsonOut {
		data, _ := json.MarshalIndent(cfg, "", "  ")
		fmt.Println(string(data))
	} else {
		data, _ := yaml.Marshal(cfg)
		fmt.Print(string(data))
	}
	return 0
}

func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		discovered, err := config.DiscoverConfigPath()
		if err != nil {
			return nil, err
		}
		configPath = discovered
	}
	return config.Load(configPath)
}
