// Command knn is the networked terminal client for knnd: it connects
// over TCP and executes the server's remote-IO dialogue against the
// local terminal and filesystem.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ehrlich-b/knn-service/internal/codec"
	"github.com/ehrlich-b/knn-service/internal/remoteio"
	"github.com/ehrlich-b/knn-service/internal/wire"
)

func main() {
	root := &cobra.Command{
		Use:   "knn <bind-ip> <server-ip> <server-port>",
		Short: "knn classification client",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			bindIP := args[0]
			serverIP := args[1]
			serverPort, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid server port %q: %w", args[2], err)
			}

			addr := fmt.Sprintf("%s:%d", serverIP, serverPort)
			t, err := wire.Dial("tcp", bindIP, addr)
			if err != nil {
				return fmt.Errorf("connect to %s: %w", addr, err)
			}
			defer t.Close()

			c := codec.New(t)
			d := remoteio.NewDispatcher(c, os.Stdin, os.Stdout)
			if err := d.Run(); err != nil && !errors.Is(err, wire.ErrPeerClosed) {
				return err
			}
			return nil
		},
	}

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
