package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"quizdb/config"
	"quizdb/session"
	"quizdb/web"
)

var (
	servePort   int
	serveNoOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web UI for loading, searching, and exporting quiz sheets",
	Long: `Start a local HTTP server with a single page to upload a quiz sheet (or load it
from a path), search it, browse single records, and download the hits.

Each browser gets its own session. Loaded data lives in memory only and is
dropped when the session idles longer than serve.session_ttl.

Loading by path reads any file the quizdb process can read. It is on while
serve.allow_path_load is true and serve.allowed_origins is empty. Setting
allowed origins turns it off, because those origins may then post to /load
with the session cookie; only uploads are accepted in that case.`,
	Example: `
  # Start local server on the configured port
  quizdb serve

  # Custom port, do not open a browser
  quizdb serve --port 9090 --no-open
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		resolver, err := resolverFromConfig(cfg.Resolver)
		if err != nil {
			return err
		}
		options, err := importOptions(cfg.Input, "", "", "")
		if err != nil {
			return err
		}

		port := cfg.Serve.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		sessions := session.NewManager(cfg.Serve.SessionTTL)
		handler := web.NewServer(sessions, web.Options{
			Resolver:       resolver,
			Import:         options,
			AllowedOrigins: cfg.Serve.AllowedOrigins,
			MaxUploadBytes: cfg.Serve.MaxUploadMB << 20,
			AllowPathLoad:  cfg.Serve.PathLoadEnabled(),
			Logger:         slog.Default(),
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if cfg.Serve.SessionTTL > 0 {
			go handler.SweepSessions(ctx, sweepInterval(cfg.Serve.SessionTTL))
		}

		addr := fmt.Sprintf(":%d", port)
		server := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		listenURL := fmt.Sprintf("http://localhost:%d", port)
		fmt.Printf("Listening on %s\n", listenURL)
		slog.Info("starting server", "port", port, "session_ttl", cfg.Serve.SessionTTL)
		if !serveNoOpen {
			if openErr := openURLInBrowser(listenURL); openErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to open browser: %v\n", openErr)
			}
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh:
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

// sweepInterval checks for idle sessions a few times per TTL, at most once a
// minute.
func sweepInterval(ttl time.Duration) time.Duration {
	interval := ttl / 4
	if interval > time.Minute {
		return time.Minute
	}
	if interval < time.Second {
		return time.Second
	}
	return interval
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8501, "HTTP port for the local web server (default from config serve.port)")
	serveCmd.Flags().BoolVar(&serveNoOpen, "no-open", false, "Do not open browser automatically")
}

func openURLInBrowser(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}
	return cmd.Start()
}
