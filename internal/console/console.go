// Package console はオペレーター向けの起動バナーと終了メッセージを出力する
package console

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"devserver/internal/server"
)

var (
	title   = color.New(color.FgCyan, color.Bold)
	link    = color.New(color.FgGreen)
	success = color.New(color.FgGreen, color.Bold)
	failure = color.New(color.FgRed, color.Bold)
)

// Banner はサーバー起動時のバナーを出力する
func Banner(w io.Writer, url string) {
	title.Fprintln(w, "\n╔══════════════════════════════════════════════════════════╗")
	title.Fprintln(w, "║           Local Development Server Started               ║")
	title.Fprintln(w, "╚══════════════════════════════════════════════════════════╝")
	fmt.Fprintln(w)
	fmt.Fprint(w, "Server running at: ")
	link.Fprintln(w, url)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Open your browser and navigate to:")
	fmt.Fprint(w, "  → ")
	link.Fprintln(w, url)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "To stop the server, press Ctrl+C")
	fmt.Fprintln(w)
}

// Stopped は割り込みによる停止の確認メッセージを出力する
func Stopped(w io.Writer) {
	fmt.Fprint(w, "\n\n")
	success.Fprintln(w, "✓ Server stopped")
}

// StartupError は起動時の致命的なエラーを出力する
// バインド失敗は「使用中」「権限不足」「その他」を区別する
func StartupError(w io.Writer, err error) {
	var bindErr *server.BindError
	if errors.As(err, &bindErr) {
		switch {
		case bindErr.AddrInUse():
			failure.Fprintf(w, "\n✗ Error: Port %d is already in use.\n", bindErr.Port)
			fmt.Fprintln(w, "  Try a different port by editing DefaultPort, or stop the other server.")
			fmt.Fprintln(w)
			return
		case bindErr.PermissionDenied():
			failure.Fprintf(w, "\n✗ Error: permission denied binding port %d: %v\n\n", bindErr.Port, bindErr.Err)
			return
		}
	}

	failure.Fprintf(w, "\n✗ Error: %v\n\n", err)
}
