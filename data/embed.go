// Package data 嵌入运行时数据文件
//
// //go:embed 只能引用本包目录下的文件，所以嵌入声明放在 data/ 目录里，
// 桌面端、移动端和终端入口都通过 embedded.Init(data.FS) 使用同一份数据。
package data

import "embed"

// FS 以 data/ 目录为根的嵌入文件系统
//
//go:embed stage.yaml
var FS embed.FS
