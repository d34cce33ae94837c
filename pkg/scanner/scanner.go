package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/moyu-x/forganize/internal"
	"github.com/moyu-x/forganize/pkg/logger"
)

// Scanner 列出源目录中直接包含的普通文件
type Scanner struct {
	Fs afero.Fs
	// 扫描时跳过的目录项名称（目标根目录）
	Exclude string
}

func NewScanner(fs afero.Fs) *Scanner {
	return &Scanner{
		Fs:      fs,
		Exclude: internal.DestDirName,
	}
}

// Scan 返回按名称排序的文件条目，不递归子目录
func (s *Scanner) Scan(dir string) ([]internal.FileEntry, error) {
	logger.Get().Debug().Msgf("扫描目录: %s", dir)

	infos, err := afero.ReadDir(s.Fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", internal.ErrSourceNotFound, dir)
		}
		return nil, fmt.Errorf("%w: %s: %w", internal.ErrScanIO, dir, err)
	}

	entries := make([]internal.FileEntry, 0, len(infos))
	for _, info := range infos {
		if info.Name() == s.Exclude || !info.Mode().IsRegular() {
			continue
		}
		entries = append(entries, internal.FileEntry{
			Name:       info.Name(),
			SourcePath: filepath.Join(dir, info.Name()),
			Size:       uint64(info.Size()),
		})
	}

	// afero.ReadDir 已排序，这里不依赖具体实现
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	logger.Get().Debug().Msgf("扫描完成，共找到 %d 个文件", len(entries))
	return entries, nil
}
