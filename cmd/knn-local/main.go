// Command knn-local runs a single classification session against the
// local terminal and filesystem, with no network involved.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ehrlich-b/knn-service/internal/knn"
	"github.com/ehrlich-b/knn-service/internal/localio"
	"github.com/ehrlich-b/knn-service/internal/logger"
	"github.com/ehrlich-b/knn-service/internal/session"
)

func main() {
	root := &cobra.Command{
		Use:   "knn-local <classified.csv>",
		Short: "run a local knn classification session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trainPath := args[0]

			if err := logger.Init("warn", ""); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			f, err := os.Open(trainPath)
			if err != nil {
				return fmt.Errorf("open %s: %w", trainPath, err)
			}
			shared, err := knn.LoadCSV(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("load %s: %w", trainPath, err)
			}

			ep := localio.New(os.Stdin, os.Stdout)
			defer ep.CloseFiles()

			m := session.NewMachine(ep, shared, slog.Default(), "local")
			return m.Run()
		},
	}

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
