package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/database"
	"github.com/pandablocks/pandad/internal/dispatch"
	"github.com/pandablocks/pandad/internal/hardware"
	"github.com/pandablocks/pandad/internal/logging"
	"github.com/pandablocks/pandad/internal/metrics"
	"github.com/pandablocks/pandad/internal/server"
)

func newServeCmd() *cobra.Command {
	var configDir string
	var port int
	var debug bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load a config directory and serve the command protocol over TCP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configDir, port, debug)
		},
	}
	cmd.Flags().StringVar(&configDir, "config-dir", "", "directory containing config, registers and description files")
	cmd.Flags().IntVar(&port, "port", 8888, "TCP port to listen on")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable verbose debug logging")
	cmd.MarkFlagRequired("config-dir")
	return cmd
}

func runServe(ctx context.Context, configDir string, port int, debug bool) error {
	logger, err := logging.New(debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	src, closeSources, err := openSources(configDir)
	if err != nil {
		return err
	}
	defer closeSources()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hw := hardware.NewSimulator()
	idx := changeset.NewIndex()
	db, err := database.Load(ctx, src, hw, idx)
	if err != nil {
		return fmt.Errorf("load database: %w", err)
	}
	rt := dispatch.NewRuntime(db, idx)

	addr := fmt.Sprintf(":%d", port)
	ln, err := server.Listen(ctx, addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	reg := metrics.New(prometheus.DefaultRegisterer)
	srv := server.New(ln, rt, server.Config{Logger: logger, Metrics: reg})

	notify := make(chan os.Signal, 1)
	signal.Notify(notify, os.Interrupt)
	defer signal.Stop(notify)

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error { return srv.Serve(gctx) })
	group.Go(func() error {
		select {
		case <-notify:
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	logger.Info("serving", zap.String("addr", addr), zap.String("config_dir", configDir))
	return group.Wait()
}
