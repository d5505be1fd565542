// Package main serves the current directory over HTTP/1.1, one connection at a time.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Biku213/Simple-File-Server/internal/config"
	"github.com/Biku213/Simple-File-Server/internal/dispatch"
	"github.com/Biku213/Simple-File-Server/internal/logging"
	"github.com/Biku213/Simple-File-Server/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML or YAML config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	logger := logging.New(os.Stderr, cfg.NoColor)

	root, err := cfg.RootFunc()()
	if err != nil {
		log.Fatalf("Failed to resolve directory: %v", err)
	}
	if _, err := os.Stat(root); os.IsNotExist(err) {
		log.Fatalf("Directory does not exist: %s", root)
	}

	srv := &server.Server{
		Addr:       cfg.Listen,
		BufferSize: cfg.ReadBufferSize,
		Handler: &dispatch.Handler{
			Root:     cfg.RootFunc(),
			Markdown: cfg.MarkdownListings,
		},
		Logger: logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("🌐 Serving %s at http://%s\n", root, cfg.Listen)
	fmt.Println("Press Ctrl+C to stop")

	if err := srv.ListenAndServe(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
