package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/newsdigest/newsum/internal/cmdutil"
	"github.com/newsdigest/newsum/internal/config"
	"github.com/newsdigest/newsum/internal/server"
)

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the summary API server",
	Long: `Start the HTTP API server.

Endpoints:
  GET  /health
  POST /v1/summarize   {"text": "...", "algorithm": "frequency|lexrank"}
  GET  /v1/headlines?q=<query>
  GET  /v1/digest?url=<article url>`,
	RunE: runServe,
}

var (
	host string
	port int
)

func init() {
	ServeCmd.Flags().StringVar(&host, "host", "", "Listen address (overrides config)")
	ServeCmd.Flags().IntVar(&port, "port", 0, "Server port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// 設定読み込み
	cfg, err := cmdutil.GetConfigStore(cmd)
	if err != nil {
		return err
	}

	// ホスト・ポートのオーバーライド（コマンドライン引数）
	if host != "" {
		if err := cfg.SetFlag(config.PathServerHost, host); err != nil {
			return err
		}
	}
	if port > 0 {
		if err := cfg.SetFlag(config.PathServerPort, port); err != nil {
			return err
		}
	}

	svc, err := cmdutil.NewService(cfg)
	if err != nil {
		return err
	}

	// サーバー作成
	srv, err := server.NewServer(cfg, svc, cmdutil.EngineFactory(cfg))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// シグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
		fmt.Fprintln(cmd.ErrOrStderr(), "\nShutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
