package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"devserver/internal/config"
)

// shutdownTimeout はグレースフルシャットダウンの待ち時間
const shutdownTimeout = 5 * time.Second

// Server は静的ファイルを配信するHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	engine     *gin.Engine
	httpServer *http.Server

	mu       sync.Mutex
	listener net.Listener

	shutdownOnce sync.Once
	shutdownErr  error
}

// New は新しいServerインスタンスを作成する
// logOut にはリクエストごとのアクセスログが書き込まれる
func New(cfg *config.Config, logOut io.Writer) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	// クライアントIPは常に接続元アドレスを使う
	if err := engine.SetTrustedProxies(nil); err != nil {
		log.Printf("信頼するプロキシの設定に失敗: %v", err)
	}
	engine.HandleMethodNotAllowed = true

	s := &Server{
		config: cfg,
		engine: engine,
		httpServer: &http.Server{
			Addr:        cfg.ServerAddress(),
			Handler:     engine,
			ReadTimeout: cfg.Server.ReadTimeout,
		},
	}
	s.setupRoutes(logOut)

	return s
}

// setupRoutes はミドルウェアとルートを設定する
func (s *Server) setupRoutes(logOut io.Writer) {
	s.engine.Use(
		AccessLogger(logOut),
		gin.Recovery(),
		ResponseHeaders(),
	)

	static := newStaticHandler(s.config.Root)
	s.engine.GET("/*filepath", static.handle)
	s.engine.HEAD("/*filepath", static.handle)
}

// Handler はHTTPハンドラを返す
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Listen はポートをバインドする
// 失敗した場合は *BindError を返す
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return nil
	}

	l, err := net.Listen("tcp", s.config.ServerAddress())
	if err != nil {
		return &BindError{
			Addr: s.config.ServerAddress(),
			Port: s.config.Server.Port,
			Err:  err,
		}
	}
	s.listener = l

	return nil
}

// Addr はバインド済みのアドレスを返す（未バインドならnil）
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Port は実際に待ち受けているポート番号を返す
func (s *Server) Port() int {
	if addr, ok := s.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return s.config.Server.Port
}

// URL はブラウザで開くためのURLを返す
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.Port())
}

// Serve はアクセプトループを実行する
// ctx がキャンセルされるか Shutdown が呼ばれるまでブロックする
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	s.mu.Lock()
	l := s.listener
	s.mu.Unlock()

	// サーバーを別ゴルーチンで起動
	serveCh := make(chan error, 1)
	go func() {
		err := s.httpServer.Serve(l)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveCh <- err
	}()

	// コンテキストかサーバーの終了を待つ
	select {
	case <-ctx.Done():
	case err := <-serveCh:
		if err != nil {
			return fmt.Errorf("アクセプトループが異常終了: %w", err)
		}
		// 他のゴルーチンから Shutdown された
		return nil
	}

	return s.Shutdown()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
// 期限内に終わらない接続は強制的に閉じ、エラーにはしない
// 何度呼んでも安全で、2回目以降は最初の結果を返す
func (s *Server) Shutdown() error {
	s.shutdownOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(ctx); err != nil {
			// 期限内に終わらない接続は強制的に閉じて停止を続ける
			log.Printf("グレースフルシャットダウンが完了しないため接続を強制終了します: %v", err)
			if cerr := s.httpServer.Close(); cerr != nil {
				log.Printf("接続の強制終了に失敗: %v", cerr)
			}
		}

		// Serve に入る前でもソケットは閉じる
		s.mu.Lock()
		if s.listener != nil {
			if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) && s.shutdownErr == nil {
				s.shutdownErr = fmt.Errorf("リスナーのクローズに失敗: %w", err)
			}
		}
		s.mu.Unlock()
	})

	return s.shutdownErr
}
