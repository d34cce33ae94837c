// Package mover 将文件移动到分类目录，处理目录创建和文件名冲突。
//
// 冲突策略：目标已存在且内容相同时跳过（源文件保留），内容不同时在扩展名前
// 追加 _N 序号。任何情况下都不会覆盖已有文件。
package mover

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/moyu-x/forganize/internal"
	"github.com/moyu-x/forganize/pkg/hasher"
	"github.com/moyu-x/forganize/pkg/logger"
)

type Mover struct {
	Fs       afero.Fs
	DestRoot string

	mu      sync.Mutex
	folders map[string]*sync.Mutex
}

func New(fs afero.Fs, destRoot string) *Mover {
	return &Mover{
		Fs:       fs,
		DestRoot: destRoot,
		folders:  make(map[string]*sync.Mutex),
	}
}

// EnsureDir 递归创建目录，已存在时直接返回
func (m *Mover) EnsureDir(path string) error {
	if err := m.Fs.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("%w: %s: %w", internal.ErrDirectoryCreate, path, err)
	}
	return nil
}

// Move 将文件移动到 DestRoot/folder 下，保留原文件名
func (m *Mover) Move(entry internal.FileEntry, folder string) (internal.MoveResult, error) {
	result := internal.MoveResult{Entry: entry, Folder: folder}

	dir, err := m.folderPath(folder)
	if err != nil {
		return result, err
	}
	if err := m.EnsureDir(dir); err != nil {
		return result, fmt.Errorf("%w: %w", internal.ErrMove, err)
	}

	lock := m.folderLock(dir)
	lock.Lock()
	defer lock.Unlock()

	dst := filepath.Join(dir, entry.Name)
	result.Destination = dst

	if filepath.Clean(entry.SourcePath) == filepath.Clean(dst) {
		result.Status = internal.SkippedSamePath
		return result, nil
	}

	exists, err := afero.Exists(m.Fs, dst)
	if err != nil {
		return result, fmt.Errorf("%w: 检查文件是否存在失败: %w", internal.ErrMove, err)
	}

	result.Status = internal.Moved
	if exists {
		same, err := hasher.SameContent(m.Fs, entry.SourcePath, dst)
		if err != nil {
			return result, fmt.Errorf("%w: 比较文件内容失败: %w", internal.ErrMove, err)
		}
		if same {
			logger.Get().Debug().
				Str("source", entry.SourcePath).
				Str("existing", dst).
				Msg("目标已存在相同内容的文件，跳过")
			result.Status = internal.SkippedDuplicate
			return result, nil
		}

		dst, err = m.uniquePath(dst)
		if err != nil {
			return result, fmt.Errorf("%w: %w", internal.ErrMove, err)
		}
		logger.Get().Debug().
			Str("original_path", result.Destination).
			Str("new_path", dst).
			Msg("文件名冲突，自动重命名")
		result.Destination = dst
		result.Status = internal.Renamed
	}

	if err := m.moveFile(entry.SourcePath, dst); err != nil {
		return result, fmt.Errorf("%w: %s: %w", internal.ErrMove, entry.Name, err)
	}
	return result, nil
}

// folderPath 返回目录的绝对路径，拒绝指向目标根目录之外的目录名
func (m *Mover) folderPath(folder string) (string, error) {
	dir, err := internal.FolderPath(m.DestRoot, folder)
	if err != nil {
		return "", fmt.Errorf("%w: %w", internal.ErrMove, err)
	}
	return dir, nil
}

func (m *Mover) folderLock(dir string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.folders == nil {
		m.folders = make(map[string]*sync.Mutex)
	}
	l, ok := m.folders[dir]
	if !ok {
		l = &sync.Mutex{}
		m.folders[dir] = l
	}
	return l
}

// uniquePath 在扩展名前追加最小可用的 _N 序号
func (m *Mover) uniquePath(dst string) (string, error) {
	ext := filepath.Ext(dst)
	baseName := strings.TrimSuffix(dst, ext)

	for i := 1; ; i++ {
		newPath := fmt.Sprintf("%s_%d%s", baseName, i, ext)
		exists, err := afero.Exists(m.Fs, newPath)
		if err != nil {
			return "", err
		}
		if !exists {
			return newPath, nil
		}
	}
}

// moveFile 优先使用 rename，失败时（例如跨设备）复制后删除源文件
func (m *Mover) moveFile(src, dst string) error {
	err := m.Fs.Rename(src, dst)
	if err == nil {
		return nil
	}

	logger.Get().Debug().
		Err(err).
		Str("source", src).
		Str("destination", dst).
		Msg("直接重命名失败，尝试复制后删除")

	if err := m.copyFile(src, dst); err != nil {
		return err
	}
	if err := m.Fs.Remove(src); err != nil {
		return fmt.Errorf("删除原文件失败: %w", err)
	}
	return nil
}

func (m *Mover) copyFile(src, dst string) error {
	sourceFile, err := m.Fs.Open(src)
	if err != nil {
		return fmt.Errorf("打开源文件失败: %w", err)
	}
	defer sourceFile.Close()

	info, err := sourceFile.Stat()
	if err != nil {
		return fmt.Errorf("读取源文件信息失败: %w", err)
	}

	destFile, err := m.Fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("创建目标文件失败: %w", err)
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		m.Fs.Remove(dst)
		return fmt.Errorf("复制文件内容失败: %w", err)
	}
	if err := destFile.Close(); err != nil {
		m.Fs.Remove(dst)
		return fmt.Errorf("关闭目标文件失败: %w", err)
	}
	return nil
}
