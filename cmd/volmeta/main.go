package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/volmeta/volmeta/internal/logger"
	"github.com/volmeta/volmeta/pkg/config"
	"github.com/volmeta/volmeta/pkg/metrics"
	"github.com/volmeta/volmeta/pkg/volume"
)

const usage = `volmeta - volume metadata and mount enumeration

Usage:
  volmeta mounts [flags]              List mount points with accessibility status
  volmeta volume <path> [flags]       Resolve metadata for the volume at path
  volmeta hidden get <path>           Report whether path is hidden
  volmeta hidden set <path> <bool>    Hide or reveal path
  volmeta config init [flags]         Write the default configuration file

Common flags:
  -config <file>     Configuration file (default: ` + "$XDG_CONFIG_HOME/volmeta/config.yaml" + `)
  -log-level <lvl>   Override log level (DEBUG, INFO, WARN, ERROR)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "mounts":
		runMounts(os.Args[2:])
	case "volume":
		runVolume(os.Args[2:])
	case "hidden":
		runHidden(os.Args[2:])
	case "config":
		runConfig(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
}

// setup loads configuration, applies flag overrides, and wires logging and
// metrics. Every subcommand goes through here.
func setup(configPath, logLevel string) *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	logger.SetLevel(cfg.Logging.Level)
	if err := logger.SetOutput(cfg.Logging.Output); err != nil {
		log.Fatalf("Failed to configure log output: %v", err)
	}

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		volume.SetMetrics(metrics.NewVolumeMetrics())
		go serveMetrics(cfg.Metrics.Listen)
	}

	return cfg
}

// serveMetrics exposes the Prometheus endpoint for the lifetime of the
// command. Mostly useful when volmeta runs under a supervisor that scrapes
// long enumerations.
func serveMetrics(listen string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(listen, mux); err != nil {
		logger.Warn("Metrics endpoint failed: %v", err)
	}
}

func runMounts(args []string) {
	fs := flag.NewFlagSet("mounts", flag.ExitOnError)
	configPath := fs.String("config", "", "Configuration file")
	logLevel := fs.String("log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	timeout := fs.Duration("timeout", 0, "Per-probe timeout (0 uses configured value)")
	skipNetwork := fs.Bool("skip-network", false, "Skip network mounts")
	fs.Parse(args)

	cfg := setup(*configPath, *logLevel)

	opts := cfg.Probe.Options()
	if *timeout > 0 {
		opts.Timeout = *timeout
	}
	if *skipNetwork {
		opts.SkipNetworkVolumes = true
	}

	entries, err := volume.GetVolumeMountPoints(context.Background(), opts)
	if err != nil {
		log.Fatalf("Failed to enumerate mount points: %v", err)
	}

	printJSON(entries)
}

func runVolume(args []string) {
	fs := flag.NewFlagSet("volume", flag.ExitOnError)
	configPath := fs.String("config", "", "Configuration file")
	logLevel := fs.String("log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	timeout := fs.Duration("timeout", 0, "Enrichment timeout (0 uses configured value)")
	device := fs.String("device", "", "Device hint for label and UUID resolution")
	skipNetwork := fs.Bool("skip-network", false, "Do not touch network volumes beyond the mount table")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: volmeta volume <path> [flags]")
		os.Exit(2)
	}
	path := fs.Arg(0)

	cfg := setup(*configPath, *logLevel)

	opts := cfg.Probe.Options()
	opts.Device = *device
	if *timeout > 0 {
		opts.Timeout = *timeout
	}
	if *skipNetwork {
		opts.SkipNetworkVolumes = true
	}

	start := time.Now()
	md, err := volume.GetVolumeMetadata(context.Background(), path, opts)
	if err != nil {
		log.Fatalf("Failed to resolve volume metadata: %v", err)
	}
	logger.Debug("Resolved %q in %v", path, time.Since(start))

	printJSON(md)
}

func runHidden(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: volmeta hidden get <path> | volmeta hidden set <path> <true|false>")
		os.Exit(2)
	}

	verb := args[0]
	fs := flag.NewFlagSet("hidden", flag.ExitOnError)
	configPath := fs.String("config", "", "Configuration file")
	logLevel := fs.String("log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	fs.Parse(args[1:])

	setup(*configPath, *logLevel)

	switch verb {
	case "get":
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "usage: volmeta hidden get <path>")
			os.Exit(2)
		}
		hidden, err := volume.GetHiddenAttribute(context.Background(), fs.Arg(0))
		if err != nil {
			log.Fatalf("Failed to read hidden attribute: %v", err)
		}
		printJSON(map[string]bool{"hidden": hidden})

	case "set":
		if fs.NArg() != 2 {
			fmt.Fprintln(os.Stderr, "usage: volmeta hidden set <path> <true|false>")
			os.Exit(2)
		}
		hidden, err := strconv.ParseBool(fs.Arg(1))
		if err != nil {
			log.Fatalf("Invalid hidden value %q: %v", fs.Arg(1), err)
		}
		if err := volume.SetHiddenAttribute(context.Background(), fs.Arg(0), hidden); err != nil {
			log.Fatalf("Failed to set hidden attribute: %v", err)
		}
		printJSON(map[string]bool{"hidden": hidden})

	default:
		fmt.Fprintf(os.Stderr, "unknown hidden verb %q\n", verb)
		os.Exit(2)
	}
}

func runConfig(args []string) {
	if len(args) < 1 || args[0] != "init" {
		fmt.Fprintln(os.Stderr, "usage: volmeta config init [flags]")
		os.Exit(2)
	}

	fs := flag.NewFlagSet("config init", flag.ExitOnError)
	path := fs.String("path", "", "Destination file (default: "+config.GetDefaultConfigPath()+")")
	force := fs.Bool("force", false, "Overwrite an existing file")
	fs.Parse(args[1:])

	written, err := config.WriteDefaultConfig(*path, *force)
	if err != nil {
		log.Fatalf("Failed to write configuration: %v", err)
	}
	fmt.Printf("Wrote %s\n", written)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
}
