// Package server は、ローカル開発用の静的ファイルサーバーを提供します。
//
// このパッケージは、HTTPサーバーの起動と停止、静的ファイルの配信、
// 全レスポンスへの固定ヘッダー付与、リクエストごとのアクセスログ出力を担当します。
//
// 責務:
//   - TCPポートのバインドとバインド失敗の分類（使用中 / 権限不足 / その他）
//   - ルートディレクトリ配下のファイル・ディレクトリの配信
//   - CORSヘッダーとキャッシュ無効化ヘッダーの付与（エラーレスポンスを含む）
//   - 1リクエスト1行のアクセスログ出力
//
// 仕様:
//   - ルーティングとミドルウェアはgin-gonic/ginを使用
//   - 拡張子から判定できないファイルの Content-Type は gabriel-vasile/mimetype で判定
//   - 接続ごとにゴルーチンで処理し、遅いクライアントが他を妨げない
//   - グレースフルシャットダウンに対応（Shutdown は冪等）
package server
