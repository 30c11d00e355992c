package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/atnzpe/krav-maga-analyzer/internal/config"
	"github.com/atnzpe/krav-maga-analyzer/internal/mcp"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("kravmaga-mcp", Version)
		return
	}

	// Logs go to stderr: stdout carries the MCP stdio transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	s := mcp.New(cfg, Version, log)
	log.Info("kravmaga-mcp serving on stdio", "version", Version)

	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
