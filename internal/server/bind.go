package server

import (
	"errors"
	"fmt"
	"os"
)

// BindError はポートのバインドに失敗したことを表す
// 起動時の致命的なエラーで、再試行はしない
type BindError struct {
	Addr string // バインドしようとしたアドレス
	Port int    // ポート番号
	Err  error  // OSからのエラー
}

func (e *BindError) Error() string {
	return fmt.Sprintf("%s のバインドに失敗: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// AddrInUse はポートが既に使用中かどうかを返す
func (e *BindError) AddrInUse() bool {
	return isAddrInUse(e.Err)
}

// PermissionDenied は権限不足でバインドできなかったかどうかを返す
func (e *BindError) PermissionDenied() bool {
	return errors.Is(e.Err, os.ErrPermission)
}
