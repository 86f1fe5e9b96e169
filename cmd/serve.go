package cmd

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ridoystarlord/crudforge/config"
	"github.com/ridoystarlord/crudforge/logs"
	"github.com/ridoystarlord/crudforge/tool"
	"github.com/ridoystarlord/crudforge/transport"
)

var (
	serveHTTP  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tools over stdio JSON-RPC, or over HTTP with --http",
	Long: `Serve the generation tools to an assistant or another program.

Without flags, crudforge is an MCP server on stdio: newline-delimited JSON-RPC
2.0 requests (initialize, tools/list, tools/call) are read from stdin and one
response per line is written to stdout. Logs go to stderr.

With --http, GET /tools lists the tools and POST /tools/:name calls one with
the JSON body as arguments.

Examples:
  crudforge serve
  crudforge serve --http :8080
  crudforge serve --watch            # reload crudforge.yaml on change
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var current atomic.Pointer[config.Config]
		current.Store(cfg)
		adapter := tool.New(settingsFrom(cfg), connector(current.Load))

		if serveWatch {
			watching := cfgLoader.Watch(func(c *config.Config, err error) {
				if err != nil {
					logs.Warn("config reload failed", zap.Error(err))
					return
				}
				current.Store(c)
				adapter.SetSettings(settingsFrom(c))
				logs.Info("config reloaded", zap.String("file", cfgLoader.ConfigFile()))
			})
			if !watching {
				logs.Warn("no config file to watch")
			}
		}

		if serveHTTP != "" {
			return serveOverHTTP(ctx, adapter)
		}

		stdio, err := transport.NewStdio(adapter)
		if err != nil {
			return err
		}
		logs.Info("stdio transport ready", zap.Int("tools", len(adapter.Tools())))
		errCh := make(chan error, 1)
		go func() {
			errCh <- stdio.Serve(ctx, os.Stdin, os.Stdout)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			return nil
		}
	},
}

func serveOverHTTP(ctx context.Context, adapter *tool.Adapter) error {
	srv := transport.NewHTTPServer(serveHTTP, adapter)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	logs.Info("http transport stopped")
	return nil
}

func init() {
	serveCmd.Flags().StringVar(&serveHTTP, "http", "", "Listen address for the HTTP transport, e.g. :8080")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload the config file when it changes")
}
