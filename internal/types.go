package internal

import "sort"

// 文件条目，由扫描器生成
type FileEntry struct {
	Name       string
	SourcePath string
	Size       uint64
}

// 单个目录的统计
type Tally struct {
	Count uint
	Bytes uint64
}

// 整理报告
type Report struct {
	PerFolder  map[string]Tally
	TotalFiles uint
	TotalBytes uint64
}

func NewReport() *Report {
	return &Report{PerFolder: make(map[string]Tally)}
}

// Add 记录一个文件
func (r *Report) Add(folder string, bytes uint64) {
	t := r.PerFolder[folder]
	t.Count++
	t.Bytes += bytes
	r.PerFolder[folder] = t
	r.TotalFiles++
	r.TotalBytes += bytes
}

// Ensure 保证目录出现在报告中，即使没有文件
func (r *Report) Ensure(folder string) {
	if _, ok := r.PerFolder[folder]; !ok {
		r.PerFolder[folder] = Tally{}
	}
}

// Folders 按名称排序返回报告中的目录
func (r *Report) Folders() []string {
	folders := make([]string, 0, len(r.PerFolder))
	for f := range r.PerFolder {
		folders = append(folders, f)
	}
	sort.Strings(folders)
	return folders
}

// 移动结果
type MoveStatus int

const (
	Moved MoveStatus = iota
	Renamed
	SkippedDuplicate
	SkippedSamePath
)

func (s MoveStatus) String() string {
	switch s {
	case Moved:
		return "moved"
	case Renamed:
		return "renamed"
	case SkippedDuplicate:
		return "duplicate"
	case SkippedSamePath:
		return "same-path"
	default:
		return "unknown"
	}
}

type MoveResult struct {
	Entry       FileEntry
	Folder      string
	Destination string
	Status      MoveStatus
}

// Relocated 文件是否实际离开了源目录
func (m MoveResult) Relocated() bool {
	return m.Status == Moved || m.Status == Renamed
}

// 单个文件或目录的失败记录
type FileFailure struct {
	Name string
	Err  error
}

// 搜索结果
type SearchResult struct {
	Category string
	Filename string
	FullPath string
}
