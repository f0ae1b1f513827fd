package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"devserver/internal/config"
	"devserver/internal/console"
	"devserver/internal/server"
)

func main() {
	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		console.StartupError(os.Stdout, err)
		os.Exit(1)
	}

	// 割り込みシグナルでキャンセルされるコンテキスト
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := run(ctx, cfg, os.Stdout)
	stop()
	os.Exit(code)
}

// run はサーバーをバインドして ctx がキャンセルされるまで配信し、終了コードを返す
func run(ctx context.Context, cfg *config.Config, out io.Writer) int {
	srv := server.New(cfg, out)

	// バナーより先にバインドして、使用中ポートを即座に報告する
	if err := srv.Listen(); err != nil {
		console.StartupError(out, err)
		return 1
	}

	console.Banner(out, srv.URL())

	if err := srv.Serve(ctx); err != nil {
		console.StartupError(out, err)
		return 1
	}

	console.Stopped(out)
	return 0
}
