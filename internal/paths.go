package internal

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidFolder 分类目录名必须是单层目录，不能为 "."、".." 或包含路径分隔符
func ValidFolder(folder string) error {
	if folder == "" || folder == "." || folder == ".." ||
		strings.ContainsRune(folder, '/') || strings.ContainsRune(folder, filepath.Separator) {
		return fmt.Errorf("%w: %q", ErrInvalidFolder, folder)
	}
	return nil
}

// FolderPath 返回目标根目录下分类目录的路径
func FolderPath(destRoot, folder string) (string, error) {
	if err := ValidFolder(folder); err != nil {
		return "", err
	}
	return filepath.Join(destRoot, folder), nil
}
