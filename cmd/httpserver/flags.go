package main

import (
	"flag"

	"github.com/DavidBarbosag/taller2AREP/internal/config"
)

// loadConfig layers command-line flags over the defaults, file and
// environment read by config.Read, then validates the result once. Only
// flags actually passed override anything.
func loadConfig(args []string) (*config.Config, error) {
	fs := flag.NewFlagSet("httpserver", flag.ContinueOnError)
	var (
		configPath = fs.String("config", "", "path to a .yaml, .yml or .toml config file")
		host       = fs.String("host", "", "interface to listen on (default all)")
		port       = fs.Int("port", config.DefaultPort, "TCP port to listen on")
		staticDir  = fs.String("static", config.DefaultStaticDir, "directory served for unrouted paths")
		workers    = fs.Int("workers", 0, "connection workers (default one per CPU)")
		logLevel   = fs.String("log-level", config.DefaultLogLevel, "debug, info, warn or error")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Read(*configPath)
	if err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			cfg.Host = *host
		case "port":
			cfg.Port = *port
		case "static":
			cfg.StaticDir = *staticDir
		case "workers":
			cfg.Workers = *workers
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
