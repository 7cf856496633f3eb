// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 pqledger Authors

// Command pqledgerd boots a ledger from genesis (or a persisted chain file)
// and serves the read-only balance RPC over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pqchain/pqledger/internal/chain"
	"github.com/pqchain/pqledger/internal/config"
	"github.com/pqchain/pqledger/internal/rpcserver"
)

var logger *slog.Logger

// initLogger sets up the package-level slog.Logger: verbosity toggled by an
// env var, timestamps stripped for clean CLI output. Set PQLEDGER_DEBUG=1
// for debug-level logging.
func initLogger() {
	level := slog.LevelInfo
	if os.Getenv("PQLEDGER_DEBUG") != "" {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	logger = slog.New(handler)
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (defaults used if omitted)")
	chainPath := flag.String("chain", "", "Path to a persisted chain file to load instead of forging fresh genesis")
	flag.Parse()

	initLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pqledgerd: %v\n", err)
		os.Exit(1)
	}
	chainCfg, err := cfg.ChainConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pqledgerd: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ledger, err := bootLedger(ctx, chainCfg, *chainPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pqledgerd: %v\n", err)
		os.Exit(1)
	}

	logger.Info("ledger ready", "height", ledger.Height(), "tip", ledger.Tip().Summary())

	srv := rpcserver.New(ledger, logger)
	addr := fmt.Sprintf(":%d", cfg.RPCPort)
	logger.Info("rpc listening", "addr", addr)

	httpServer := &http.Server{Addr: addr, Handler: srv}
	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		_ = httpServer.Close()
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "pqledgerd: %v\n", err)
		os.Exit(1)
	}
}

// bootLedger loads a persisted chain from chainPath if given, otherwise
// forges a fresh genesis block.
func bootLedger(ctx context.Context, cfg chain.Config, chainPath string) (*chain.Ledger, error) {
	if chainPath == "" {
		return chain.New(ctx, cfg)
	}
	data, err := os.ReadFile(chainPath)
	if err != nil {
		return nil, fmt.Errorf("reading chain file %s: %w", chainPath, err)
	}
	return chain.DecodeLedger(cfg, data)
}
