// Package util 提供通用工具函数
package util

import "strings"

// ValidatePath checks if a path is safe (no directory traversal).
// Returns true if the path is valid, false if it contains "..".
func ValidatePath(path string) bool {
	return !strings.Contains(path, "..")
}

// SafeFileName replaces path separators so name stays a single path segment
// SafeFileName 替换路径分隔符，使 name 保持为单个路径段
func SafeFileName(name string) string {
	return strings.NewReplacer("/", "-", "\\", "-").Replace(name)
}
