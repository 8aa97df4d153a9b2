package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lovelace-project/lovelace-cli/internal/browse"
)

var browsePort int

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Serve the local browse dashboard",
	Long: `Start a local web dashboard with live catalog search, login and
wishlist management. The dashboard binds to 127.0.0.1 and shares the
session stored by the CLI.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().IntVar(&browsePort, "port", 0, "dashboard port (default from config)")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	port := browsePort
	if port == 0 {
		port = a.cfg.Browse.Port
	}

	srv := browse.New(browse.Config{
		Port:            port,
		AllowAllOrigins: a.cfg.Browse.AllowAllOrigins,
		Debounce:        a.debounce(),
		DropdownSize:    a.cfg.DropdownSize,
		PageSize:        a.cfg.PageSize,
	}, a.sessions, a.client, a.center, a.activity, a.log)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	fmt.Printf("Browse dashboard running at http://127.0.0.1:%d (Ctrl-C to stop)\n", port)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	fmt.Println("\nShutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
