// Package stats 汇总目标目录中每个分类的文件数量和大小。
package stats

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/moyu-x/forganize/internal"
	"github.com/moyu-x/forganize/pkg/logger"
)

type Collector struct {
	Fs       afero.Fs
	DestRoot string
}

func NewCollector(fs afero.Fs, destRoot string) *Collector {
	return &Collector{Fs: fs, DestRoot: destRoot}
}

// Collect 统计给定目录（不递归）。目录不存在计为 0，读取失败记录日志后同样计为 0。
func (c *Collector) Collect(folders []string) *internal.Report {
	report := internal.NewReport()

	for _, folder := range folders {
		report.Ensure(folder)

		tally, err := c.collectFolder(folder)
		if err != nil {
			logger.Get().Error().Err(err).Str("category", folder).Msg("统计分类失败")
			continue
		}

		report.PerFolder[folder] = tally
		report.TotalFiles += tally.Count
		report.TotalBytes += tally.Bytes
	}

	return report
}

func (c *Collector) collectFolder(folder string) (internal.Tally, error) {
	var tally internal.Tally

	dir := filepath.Join(c.DestRoot, folder)
	infos, err := afero.ReadDir(c.Fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return tally, nil
		}
		return tally, fmt.Errorf("%w: %s: %w", internal.ErrStatsRead, dir, err)
	}

	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		tally.Count++
		tally.Bytes += uint64(info.Size())
	}

	logger.Get().Debug().
		Str("category", folder).
		Uint("count", tally.Count).
		Uint64("bytes", tally.Bytes).
		Msg("分类统计")
	return tally, nil
}
