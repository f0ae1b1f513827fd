//go:build !unix && !windows

package server

import "strings"

// errno を持たないプラットフォームではメッセージで判定する
func isAddrInUse(err error) bool {
	return err != nil && strings.Contains(err.Error(), "address already in use")
}
