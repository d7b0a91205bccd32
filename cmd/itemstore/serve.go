package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/itemstore"
	"github.com/aretw0/itemstore/internal/config"
	"github.com/aretw0/itemstore/pkg/httpapi"
)

var (
	configPath    string
	serveAddr     string
	serveAdapter  string
	serveURI      string
	serveReadOnly bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the item endpoints over HTTP",
	Long: `Serve loads the configuration, connects to the store once and serves
POST /create, GET /get, PUT /update and DELETE /delete until interrupted.

The mongo adapter reads its connection string from MONGO_URI (or .env) and
uses the rust_api_db database and items collection unless configured otherwise.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		cfg, err := config.Load(configPath, func(c *config.FileConfig) {
			if flags.Changed("addr") {
				c.Server.ListenAddr = serveAddr
			}
			if flags.Changed("adapter") && serveAdapter != c.Store.Adapter {
				// A URI belongs to the adapter it was configured for.
				c.Store.Adapter = serveAdapter
				c.Store.URI = ""
			}
			if flags.Changed("uri") {
				c.Store.URI = serveURI
			}
			if flags.Changed("read-only") {
				c.Store.ReadOnly = serveReadOnly
			}
		})
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		return serve(cmd.Context(), cfg, slog.Default(), nil)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	serveCmd.Flags().StringVar(&serveAddr, "addr", config.DefaultListenAddr, "Listen address")
	serveCmd.Flags().StringVar(&serveAdapter, "adapter", config.DefaultAdapter, "Storage adapter: mongo, fs or memory")
	serveCmd.Flags().StringVar(&serveURI, "uri", "", "Store location: mongo connection string or fs directory")
	serveCmd.Flags().BoolVar(&serveReadOnly, "read-only", false, "Reject writes (fs adapter)")
}

// serve runs the HTTP server until ctx is done, then shuts it down and
// closes the store. ready, if set, receives the bound address.
func serve(ctx context.Context, cfg config.FileConfig, logger *slog.Logger, ready func(addr string)) error {
	svc, err := itemstore.New(ctx, cfg.Store.URI,
		itemstore.WithAdapter(cfg.Store.Adapter),
		itemstore.WithLogger(logger),
		itemstore.WithDatabase(cfg.Store.Database),
		itemstore.WithCollection(cfg.Store.Collection),
		itemstore.WithConnectTimeout(cfg.ConnectTimeout()),
		itemstore.WithOperationTimeout(cfg.OperationTimeout()),
		itemstore.WithWatch(cfg.Store.Watch),
		itemstore.WithReadOnly(cfg.Store.ReadOnly),
	)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	grace := cfg.ShutdownTimeout()
	if grace <= 0 {
		grace = 10 * time.Second
	}

	repo := svc.Repository()
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), grace)
		defer cancel()
		if err := repo.Close(closeCtx); err != nil {
			logger.Warn("failed to close store", "error", err)
		}
	}()

	ln, err := net.Listen("tcp", cfg.Server.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Server.ListenAddr, err)
	}

	server := &http.Server{
		Handler: httpapi.New(svc,
			httpapi.WithLogger(logger),
			httpapi.WithDebug(cfg.Server.Debug),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	addr := ln.Addr().String()
	logger.Info("serving", "addr", addr, "adapter", cfg.Store.Adapter)
	if ready != nil {
		ready(addr)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), grace)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
