// Package embedded 提供嵌入资源的统一访问接口
//
// 嵌入的文件系统以 data/ 目录为根（见 data 包），
// 调用方仍按仓库内的路径（如 "data/stage.yaml"）读取。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// dataPrefix 所有嵌入资源路径的前缀
const dataPrefix = "data/"

// ErrNotInitialized 在 Init() 之前访问资源时返回
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var dataFS fs.FS

// Init 设置嵌入文件系统
// 必须在 main() 开始时、任何配置加载之前调用。
// 测试可以传入 fstest.MapFS（键不带 "data/" 前缀）。
func Init(data fs.FS) {
	dataFS = data
}

// Reset 清除已设置的文件系统（仅供测试使用）
func Reset() {
	dataFS = nil
}

// normalize 标准化路径、检查前缀，返回文件系统内的相对路径
func normalize(path string) (string, error) {
	// embed.FS 使用正斜杠
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")

	if !strings.HasPrefix(path, dataPrefix) {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with '%s')", path, dataPrefix)
	}
	return strings.TrimPrefix(path, dataPrefix), nil
}

// ReadFile 读取嵌入文件内容，路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	if dataFS == nil {
		return nil, ErrNotInitialized
	}
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, p)
}
