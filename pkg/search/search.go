// Package search 在目标目录中按文件名进行大小写不敏感的子串搜索。
package search

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/moyu-x/forganize/internal"
	"github.com/moyu-x/forganize/pkg/logger"
	"github.com/moyu-x/forganize/pkg/rules"
)

type Index struct {
	Fs       afero.Fs
	DestRoot string
}

func NewIndex(fs afero.Fs, destRoot string) *Index {
	return &Index{Fs: fs, DestRoot: destRoot}
}

// Search 返回一个惰性结果序列，只能遍历一次
func (idx *Index) Search(term string) *Results {
	return &Results{
		idx:  idx,
		term: rules.Lower(term),
	}
}

// Results 用法与 sql.Rows 类似：
//
//	res := idx.Search("invoice")
//	for res.Next() {
//		r := res.Result()
//	}
//	if err := res.Err(); err != nil { ... }
type Results struct {
	idx  *Index
	term string

	started bool
	done    bool
	folders []string
	files   []os.FileInfo
	folder  string
	current internal.SearchResult
	err     error
}

// Next 前进到下一个匹配项
func (r *Results) Next() bool {
	if r.done {
		return false
	}
	if !r.started {
		r.started = true
		if !r.loadFolders() {
			r.done = true
			return false
		}
	}

	for {
		for len(r.files) > 0 {
			info := r.files[0]
			r.files = r.files[1:]
			if info.IsDir() || !strings.Contains(rules.Lower(info.Name()), r.term) {
				continue
			}
			r.current = internal.SearchResult{
				Category: r.folder,
				Filename: info.Name(),
				FullPath: filepath.Join(r.idx.DestRoot, r.folder, info.Name()),
			}
			return true
		}

		if len(r.folders) == 0 {
			r.done = true
			r.current = internal.SearchResult{}
			return false
		}
		r.folder = r.folders[0]
		r.folders = r.folders[1:]
		r.files = r.readFolder(r.folder)
	}
}

// Result 当前匹配项
func (r *Results) Result() internal.SearchResult {
	return r.current
}

// Err 返回遍历中遇到的致命错误（目标根目录不存在不算错误）
func (r *Results) Err() error {
	return r.err
}

// Collect 遍历剩余的全部结果
func (r *Results) Collect() ([]internal.SearchResult, error) {
	var found []internal.SearchResult
	for r.Next() {
		found = append(found, r.Result())
	}
	return found, r.Err()
}

func (r *Results) loadFolders() bool {
	infos, err := afero.ReadDir(r.idx.Fs, r.idx.DestRoot)
	if err != nil {
		if !os.IsNotExist(err) {
			r.err = fmt.Errorf("读取目标目录失败: %s: %w", r.idx.DestRoot, err)
		}
		return false
	}
	for _, info := range infos {
		if info.IsDir() {
			r.folders = append(r.folders, info.Name())
		}
	}
	return true
}

func (r *Results) readFolder(folder string) []os.FileInfo {
	dir := filepath.Join(r.idx.DestRoot, folder)
	infos, err := afero.ReadDir(r.idx.Fs, dir)
	if err != nil {
		logger.Get().Error().Err(err).Str("dir", dir).Msg("搜索目录失败")
		return nil
	}
	return infos
}
