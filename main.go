package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/argcheck/argcheck/internal/analyzer"
	"github.com/argcheck/argcheck/internal/config"
	"github.com/argcheck/argcheck/internal/logging"
	"github.com/argcheck/argcheck/internal/resolver"
	"github.com/argcheck/argcheck/internal/server"
)

// Exit codes: 0 clean, 1 schema findings reported, 2 operational error.
const (
	exitOK       = 0
	exitFindings = 1
	exitError    = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	// Use a custom FlagSet so we can parse all args regardless of position.
	// Go's default flag.Parse stops at the first non-flag argument, which
	// breaks "argcheck ./pkg -format json". We reorder args so flags come
	// first, then positional args.
	flags, positional := reorderArgs(os.Args[1:])

	fs := flag.NewFlagSet("argcheck", flag.ExitOnError)
	pathFlag := fs.String("path", "", "path or GitHub URL to analyze (alternative to positional argument)")
	configFile := fs.String("config", "", "config file (default: .argcheck.yaml if present)")
	filter := fs.String("filter", "", "package path prefix filter")
	rules := fs.String("rules", "", "comma-separated rule ID allowlist")
	format := fs.String("format", "", "output format (text, json)")
	output := fs.String("output", "", "write findings to file instead of stdout")
	strictGroups := fs.Bool("strict-groups", false, "report group names not declared by the action enum")
	unexported := fs.Bool("unexported", false, "include findings on unexported types")
	serve := fs.Bool("serve", false, "serve findings over HTTP instead of printing")
	port := fs.Int("port", 0, "HTTP server port for -serve")
	noBrowser := fs.Bool("no-browser", false, "skip auto-opening browser in -serve mode")
	logFile := fs.String("log-file", "", "log file path")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")

	if err := fs.Parse(flags); err != nil {
		return exitError
	}
	// Collect any remaining args from flag parsing + our positional args
	positional = append(positional, fs.Args()...)

	// Determine input: positional argument takes precedence, then -path flag
	input := ""
	if len(positional) > 0 {
		input = positional[0]
	}
	if input == "" {
		input = *pathFlag
	}
	if input == "" {
		fmt.Fprintln(os.Stderr, "Usage: argcheck [flags] <path-or-url>")
		fs.PrintDefaults()
		return exitError
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return exitError
	}

	// Flags set explicitly on the command line override the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "filter":
			cfg.Filter = *filter
		case "rules":
			cfg.Rules = splitRules(*rules)
		case "format":
			cfg.Format = *format
		case "strict-groups":
			cfg.StrictGroups = *strictGroups
		case "unexported":
			cfg.Unexported = *unexported
		case "port":
			cfg.Port = *port
		case "log-file":
			cfg.LogFile = *logFile
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	if cfg.Format != "text" && cfg.Format != "json" {
		fmt.Fprintf(os.Stderr, "Invalid format %q (valid: text, json)\n", cfg.Format)
		return exitError
	}

	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level %q: %v\n", cfg.LogLevel, err)
		return exitError
	}

	logger, logCleanup, err := logging.Setup(cfg.LogFile, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logging: %v\n", err)
		return exitError
	}
	defer logCleanup()
	logger = logger.With("run_id", uuid.NewString())

	// Setup signal handling with context cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	// Step 1: Resolve input to local directory
	dir, resolverCleanup, err := resolver.Resolve(ctx, input, logger)
	if err != nil {
		logger.Error("failed to resolve input", "error", err)
		fmt.Fprintf(os.Stderr, "Error resolving input: %v\n", err)
		return exitError
	}
	defer resolverCleanup()

	// Step 2: Analyze
	opts := analyzer.AnalyzeOptions{
		Filter:            cfg.Filter,
		Rules:             cfg.Rules,
		IncludeUnexported: cfg.Unexported,
		StrictGroups:      cfg.StrictGroups,
	}

	result, err := analyzer.Analyze(ctx, dir, opts, logger)
	if err != nil {
		logger.Error("analysis failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error analyzing packages: %v\n", err)
		return exitError
	}

	// Step 3: Filter
	result = analyzer.Filter(result, opts)

	// Step 4: Report
	if *serve {
		openBrowser := !*noBrowser
		fmt.Printf("Starting server on http://localhost:%d\n", cfg.Port)
		if err := server.Serve(ctx, result, input, cfg.Port, openBrowser, logger); err != nil {
			logger.Error("server error", "error", err)
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			return exitError
		}
		return exitOK
	}

	rendered, err := renderFindings(result, cfg.Format)
	if err != nil {
		logger.Error("failed to render findings", "error", err)
		fmt.Fprintf(os.Stderr, "Error rendering findings: %v\n", err)
		return exitError
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(rendered), 0o644); err != nil {
			logger.Error("failed to write output file", "error", err)
			fmt.Fprintf(os.Stderr, "Error writing to %s: %v\n", *output, err)
			return exitError
		}
	} else {
		fmt.Print(rendered)
	}

	fmt.Fprintf(os.Stderr, "argcheck: %d schema type(s), %d finding(s)\n",
		result.TypesAnalyzed, len(result.Findings))

	if len(result.Findings) > 0 {
		return exitFindings
	}
	return exitOK
}

// renderFindings formats findings as vet-style text lines or indented JSON.
func renderFindings(result *analyzer.Result, format string) (string, error) {
	if format == "json" {
		data, err := json.MarshalIndent(result.Findings, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding findings: %w", err)
		}
		return string(data) + "\n", nil
	}

	var b strings.Builder
	for _, f := range result.Findings {
		fmt.Fprintf(&b, "%s:%d: %s: %s.%s: %s\n",
			f.Position.Filename, f.Position.Line, f.Rule, f.Type, f.Member, f.Message)
	}
	return b.String(), nil
}

// reorderArgs separates flags and positional arguments so flags can appear
// in any position (before or after the positional path argument).
// Flags that take a value (e.g., -format json) consume the next arg.
func reorderArgs(args []string) (flags, positional []string) {
	// Set of flags that take a value argument
	valueFlagSet := map[string]bool{
		"-path": true, "-config": true, "-filter": true, "-rules": true,
		"-format": true, "-output": true, "-port": true,
		"-log-file": true, "-log-level": true,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			flags = append(flags, arg)
			// Check if this flag takes a value (and it's not using = syntax)
			if !strings.Contains(arg, "=") && valueFlagSet[arg] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, arg)
		}
	}
	return flags, positional
}

func splitRules(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	rules := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			rules = append(rules, p)
		}
	}
	return rules
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s (valid: debug, info, warn, error)", s)
	}
}
