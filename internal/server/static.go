package server

import (
	"io"
	"log"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// staticHandler はルートディレクトリ配下のファイルを配信する
type staticHandler struct {
	root       http.FileSystem
	fileServer http.Handler
}

func newStaticHandler(root string) *staticHandler {
	// http.Dir がルート外へのパス解決を防ぐ
	fsys := http.Dir(root)
	return &staticHandler{
		root:       fsys,
		fileServer: http.FileServer(fsys),
	}
}

// handle は GET/HEAD リクエストを処理する
// 通常ファイルはリダイレクトなしでそのまま返し、それ以外は http.FileServer の規約に従う
// (index.html、ディレクトリ一覧、末尾スラッシュへのリダイレクト、404)
func (h *staticHandler) handle(c *gin.Context) {
	param := c.Param("filepath")
	name := path.Clean("/" + param)

	f, err := h.root.Open(name)
	if err != nil {
		h.fileServer.ServeHTTP(c.Writer, c.Request)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		h.fileServer.ServeHTTP(c.Writer, c.Request)
		return
	}

	// ファイルは末尾スラッシュ付きでは存在しない扱い
	if strings.HasSuffix(param, "/") {
		http.Error(c.Writer, "404 page not found", http.StatusNotFound)
		return
	}

	if ct := detectContentType(name, f); ct != "" {
		c.Header("Content-Type", ct)
	}
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
}

// detectContentType は拡張子から判定できないファイルの Content-Type を内容から判定する
// 拡張子で判定できる場合は空文字を返し、http.ServeContent に任せる
func detectContentType(name string, f http.File) string {
	if mime.TypeByExtension(path.Ext(name)) != "" {
		return ""
	}

	mt, err := mimetype.DetectReader(f)
	if _, serr := f.Seek(0, io.SeekStart); serr != nil {
		log.Printf("ファイル位置の巻き戻しに失敗: %s: %v", name, serr)
	}
	if err != nil {
		return ""
	}
	return mt.String()
}
