// Command knnd serves k-NN classification sessions over TCP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ehrlich-b/knn-service/internal/config"
	"github.com/ehrlich-b/knn-service/internal/logger"
	"github.com/ehrlich-b/knn-service/internal/server"
)

func main() {
	root := &cobra.Command{
		Use:   "knnd <bind-ip> <bind-port> <classified.csv>",
		Short: "knn classification daemon",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			bindIP := args[0]
			bindPort, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid bind port %q: %w", args[1], err)
			}
			trainPath := args[2]

			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg.BindIP = bindIP
			cfg.BindPort = bindPort
			cfg.SharedTrainPath = trainPath

			// Flags override the file, the file overrides built-in
			// defaults.
			if poolSize, _ := cmd.Flags().GetInt("pool-size"); poolSize > 0 {
				cfg.PoolSize = poolSize
			}
			if acceptTimeout, _ := cmd.Flags().GetString("accept-timeout"); acceptTimeout != "" {
				cfg.AcceptTimeout = acceptTimeout
			}

			if err := logger.Init(cfg.Level(), cfg.LogFile); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Run(ctx, cfg, logger.Log)
			}()

			select {
			case <-ctx.Done():
				logger.Info("shutting down...")
				<-errCh
				return nil
			case err := <-errCh:
				return err
			}
		},
	}

	root.Flags().String("config", "knnd.yaml", "path to daemon config file")
	root.Flags().Int("pool-size", 0, "worker pool size (overrides config file; default 50)")
	root.Flags().String("accept-timeout", "", "accept deadline, e.g. \"5m\" (overrides config file; default 5m)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
