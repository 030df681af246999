package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taskmate/backend/internal/api"
)

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the task list over an HTTP JSON API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		apiCfg := a.cfg.API
		if serveAddr != "" {
			apiCfg.Addr = serveAddr
		}

		a.log.Info("Starting taskmate API service")
		server := api.NewServer(a.engine, apiCfg, a.log.WithField("component", "api"))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		a.log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), apiCfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}
