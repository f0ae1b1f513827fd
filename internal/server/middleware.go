package server

import (
	"fmt"
	"io"
	"sync"

	"github.com/gin-gonic/gin"
)

// 全レスポンスに付与する固定ヘッダー
const (
	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAllowMethods = "Access-Control-Allow-Methods"
	HeaderCacheControl = "Cache-Control"

	allowOrigin  = "*"
	allowMethods = "GET"
	cacheControl = "no-store, no-cache, must-revalidate"
)

// logTimeLayout はアクセスログの日時書式 (例: 19/Oct/2026 10:04:05)
const logTimeLayout = "02/Jan/2006 15:04:05"

// ResponseHeaders はCORSヘッダーとキャッシュ無効化ヘッダーを付与するミドルウェア
// ヘッダー送出の直前にも付け直すため、途中で削除されても必ずレスポンスに残る
func ResponseHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		w := &headerWriter{ResponseWriter: c.Writer}
		w.apply()
		c.Writer = w
		c.Next()
	}
}

// headerWriter はヘッダー確定時に固定ヘッダーを上書きする gin.ResponseWriter
type headerWriter struct {
	gin.ResponseWriter
}

func (w *headerWriter) apply() {
	h := w.ResponseWriter.Header()
	h.Set(HeaderAllowOrigin, allowOrigin)
	h.Set(HeaderAllowMethods, allowMethods)
	h.Set(HeaderCacheControl, cacheControl)
}

func (w *headerWriter) WriteHeader(code int) {
	w.apply()
	w.ResponseWriter.WriteHeader(code)
}

func (w *headerWriter) WriteHeaderNow() {
	w.apply()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *headerWriter) Write(data []byte) (int, error) {
	if !w.Written() {
		w.apply()
	}
	return w.ResponseWriter.Write(data)
}

func (w *headerWriter) WriteString(s string) (int, error) {
	if !w.Written() {
		w.apply()
	}
	return w.ResponseWriter.WriteString(s)
}

func (w *headerWriter) Flush() {
	if !w.Written() {
		w.apply()
	}
	w.ResponseWriter.Flush()
}

// AccessLogger は1リクエストにつき1行のアクセスログを out に書き込むミドルウェア
func AccessLogger(out io.Writer) gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: FormatAccessLog,
		Output:    &syncWriter{w: out},
	})
}

// FormatAccessLog はアクセスログの1行を組み立てる
//
//	127.0.0.1 - [19/Oct/2026 10:04:05] "GET /index.html HTTP/1.1" 200 11
func FormatAccessLog(p gin.LogFormatterParams) string {
	proto := "HTTP/1.1"
	if p.Request != nil {
		proto = p.Request.Proto
	}

	size := "-"
	if p.BodySize >= 0 {
		size = fmt.Sprintf("%d", p.BodySize)
	}

	return fmt.Sprintf("%s - [%s] \"%s %s %s\" %d %s\n",
		p.ClientIP,
		p.TimeStamp.Format(logTimeLayout),
		p.Method,
		p.Path,
		proto,
		p.StatusCode,
		size,
	)
}

// syncWriter は並行リクエストのログ行が混ざらないよう書き込みを直列化する
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
