package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/itemstore/pkg/client"
)

var (
	verbose   bool
	serverURL string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "itemstore",
	Short: "A small HTTP item store backed by MongoDB",
	Long: `itemstore serves create, list, update and delete over HTTP for named items.
Run "itemstore serve" to start the server; the other commands talk to a running server.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", client.DefaultBaseURL, "Base URL of a running itemstore server")
}

func newClient() *client.Client {
	return client.New(serverURL)
}

// serverMessage unwraps the plain-text body of a non-2xx response.
func serverMessage(err error) error {
	var he *client.HTTPError
	if errors.As(err, &he) {
		return fmt.Errorf("%s (status %d)", he.Message(), he.StatusCode)
	}
	return err
}
