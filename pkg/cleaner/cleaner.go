// Package cleaner 在重新整理之前清空分类目录中的文件。
package cleaner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/moyu-x/forganize/internal"
	"github.com/moyu-x/forganize/pkg/logger"
)

type Cleaner struct {
	Fs       afero.Fs
	DestRoot string
}

func New(fs afero.Fs, destRoot string) *Cleaner {
	return &Cleaner{Fs: fs, DestRoot: destRoot}
}

// ClearResult 单个分类的清理结果
type ClearResult struct {
	Folder   string
	Removed  int
	Failures []internal.FileFailure
}

// Clear 删除分类目录中直接包含的文件，不处理子目录。
// 目录不存在视为清理了 0 个文件；单个文件删除失败不影响其余文件。
func (c *Cleaner) Clear(folder string) ClearResult {
	result := ClearResult{Folder: folder}
	dir, err := internal.FolderPath(c.DestRoot, folder)
	if err != nil {
		logger.Get().Error().Err(err).Msg("拒绝清理目标根目录之外的目录")
		result.Failures = append(result.Failures, internal.FileFailure{
			Name: folder,
			Err:  fmt.Errorf("%w: %w", internal.ErrClearRead, err),
		})
		return result
	}

	infos, err := afero.ReadDir(c.Fs, dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Get().Error().Err(err).Str("dir", dir).Msg("读取分类目录失败")
			result.Failures = append(result.Failures, internal.FileFailure{
				Name: folder,
				Err:  fmt.Errorf("%w: %s: %w", internal.ErrClearRead, dir, err),
			})
		}
		return result
	}

	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		path := filepath.Join(dir, info.Name())
		if err := c.Fs.Remove(path); err != nil {
			logger.Get().Error().Err(err).Str("file", path).Msg("删除文件失败")
			result.Failures = append(result.Failures, internal.FileFailure{
				Name: path,
				Err:  fmt.Errorf("%w: %w", internal.ErrClearRead, err),
			})
			continue
		}
		result.Removed++
	}

	logger.Get().Debug().Int("removed", result.Removed).Msgf("已清空目录: %s", dir)
	return result
}

// ClearAll 依次清理多个分类
func (c *Cleaner) ClearAll(folders []string) []ClearResult {
	results := make([]ClearResult, 0, len(folders))
	for _, folder := range folders {
		results = append(results, c.Clear(folder))
	}
	return results
}
